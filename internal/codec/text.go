package codec

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/scoring"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"
)

// encodeText renders the known inventory types as an aligned summary.
// Anything else falls back to YAML.
func encodeText(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := &printer{w: tw}

	switch t := v.(type) {
	case *inventory.FullHardwareInfo:
		p.snapshot(t)
	case []inventory.ScoredCPU:
		p.cpus(t)
	case []inventory.ScoredGPU:
		p.gpus(t)
	case inventory.ScoredRAM:
		p.ram(t)
	case []inventory.ScoredDisk:
		p.disks(t)
	case []collector.MotherboardInfo:
		p.boards(t)
	case []collector.MonitorInfo:
		p.monitors(t)
	case []collector.NetworkInfo:
		p.network(t)
	case []collector.SoundInfo:
		p.sound(t)
	case collector.Peripherals:
		p.peripherals(t)
	case source.Usage:
		p.usage(t)
	case []store.SnapshotRecord:
		p.history(t)
	default:
		return encodeYAML(w, v)
	}

	if p.err != nil {
		return p.err
	}
	return tw.Flush()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) row(cols ...string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, strings.Join(cols, "\t"))
}

func rating(r scoring.Result) string {
	return fmt.Sprintf("%s (%d)", r.Tier, r.Score)
}

func mhz(v uint32) string {
	return humanize.Comma(int64(v)) + " MHz"
}

func (p *printer) snapshot(s *inventory.FullHardwareInfo) {
	p.row("Host", s.Hostname, s.CollectedAt.Format("2006-01-02 15:04:05 MST"),
		fmt.Sprintf("%s ms", humanize.Comma(s.DurationMS)))
	p.row("Snapshot", s.ID)
	if s.System.Model != "" {
		p.row("System", strings.TrimSpace(s.System.Manufacturer+" "+s.System.Model), s.System.SerialNumber)
	}
	p.boards(s.Motherboard)
	p.cpus(s.CPU)
	p.gpus(s.GPU)
	p.ram(s.RAM)
	p.disks(s.Disks)
	p.monitors(s.Monitors)
	p.network(s.Network)
	p.sound(s.Sound)
	p.peripherals(s.Peripherals)
}

func (p *printer) boards(boards []collector.MotherboardInfo) {
	for _, b := range boards {
		p.row("Motherboard", strings.TrimSpace(b.Manufacturer+" "+b.Product), "chipset "+b.Chipset)
		p.row("", "GPU slots", fmt.Sprintf("%d/%d used", b.GPUSlots.Used, b.GPUSlots.Total))
		p.row("", "M.2 slots", fmt.Sprintf("%d/%d used", b.SSDSlots.Used, b.SSDSlots.Total))
		p.row("", "RAM slots", fmt.Sprintf("%d/%d used", b.RAMSlots.Used, b.RAMSlots.Total))
	}
}

func (p *printer) cpus(cpus []inventory.ScoredCPU) {
	for _, c := range cpus {
		p.row("CPU", c.Info.Name,
			fmt.Sprintf("%dC/%dT @ %s", c.Info.Cores, c.Info.LogicalProcessors, mhz(c.Info.MaxClockSpeedMHz)),
			rating(c.Result))
	}
}

func (p *printer) gpus(gpus []inventory.ScoredGPU) {
	for _, g := range gpus {
		vram := "VRAM unknown"
		if g.Info.VRAMBytes != nil {
			vram = fmt.Sprintf("%s VRAM (%s)", humanize.IBytes(*g.Info.VRAMBytes), g.Info.VRAMSource)
		}
		p.row("GPU", g.Info.Name, vram, rating(g.Result))
	}
}

func (p *printer) ram(r inventory.ScoredRAM) {
	p.row("RAM", humanize.IBytes(r.TotalBytes),
		fmt.Sprintf("%d modules @ %s", len(r.Modules), mhz(r.AvgSpeedMHz)),
		rating(r.Result))
}

func (p *printer) disks(disks []inventory.ScoredDisk) {
	for _, d := range disks {
		size := "size unknown"
		if d.Info.SizeBytes != nil {
			size = humanize.IBytes(*d.Info.SizeBytes)
		}
		kind := "HDD"
		switch {
		case d.IsNVMe:
			kind = "NVMe SSD"
		case d.IsSSD:
			kind = "SSD"
		}
		p.row("Disk", d.Info.Model, size+" "+kind, rating(d.Result))
	}
}

func (p *printer) monitors(monitors []collector.MonitorInfo) {
	for _, m := range monitors {
		res := ""
		if m.ScreenWidth != nil && m.ScreenHeight != nil {
			res = fmt.Sprintf("%dx%d", *m.ScreenWidth, *m.ScreenHeight)
		}
		p.row("Monitor", m.Name, res)
	}
}

func (p *printer) network(nics []collector.NetworkInfo) {
	for _, n := range nics {
		state := "disconnected"
		if n.Connected {
			state = "connected"
		}
		if n.SpeedBps != nil && n.Connected {
			state += ", " + humanize.SIWithDigits(float64(*n.SpeedBps), 1, "bps")
		}
		id := ""
		if n.ConnectionID != nil {
			id = *n.ConnectionID
		}
		p.row("Network", id, n.Name, state)
	}
}

func (p *printer) sound(devices []collector.SoundInfo) {
	for _, d := range devices {
		p.row("Sound", d.Name)
	}
}

func (p *printer) peripherals(per collector.Peripherals) {
	p.row("Peripherals",
		fmt.Sprintf("%d USB, %d camera, %d Bluetooth", len(per.USB), len(per.Cameras), len(per.Bluetooth)))
}

func (p *printer) usage(u source.Usage) {
	p.row("CPU", fmt.Sprintf("%.1f%%", u.CPUPercent))
	p.row("Memory", fmt.Sprintf("%s / %s", humanize.IBytes(u.MemoryUsed), humanize.IBytes(u.MemoryTotal)),
		fmt.Sprintf("%.1f%%", u.MemoryPercent))
}

func (p *printer) history(records []store.SnapshotRecord) {
	p.row("ID", "HOST", "COLLECTED", "CPU", "GPU", "RAM", "DISK")
	for _, r := range records {
		p.row(r.ID, r.Hostname, humanize.Time(r.CollectedAt), r.CPUTier, r.GPUTier, r.RAMTier, r.DiskTier)
	}
}
