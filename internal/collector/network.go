package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

// netConnectionConnected is the NetConnectionStatus code for a live link.
const netConnectionConnected = 2

type win32NetworkAdapter struct {
	Name                *string
	Manufacturer        *string
	AdapterType         *string
	NetConnectionID     *string
	Speed               *uint64
	MACAddress          *string
	NetConnectionStatus *uint16
}

var networkAdapterQuery = source.Query{
	Class: "Win32_NetworkAdapter",
	Fields: []string{
		"Name", "Manufacturer", "AdapterType", "NetConnectionID", "Speed", "MACAddress", "NetConnectionStatus",
	},
	Where: "NetConnectionID IS NOT NULL",
}

// Network reads adapters that carry a connection.
func (s *Session) Network(_ context.Context) ([]NetworkInfo, error) {
	var adapters []win32NetworkAdapter
	if err := s.query(networkAdapterQuery, &adapters); err != nil {
		return nil, err
	}

	result := make([]NetworkInfo, len(adapters))
	for i, a := range adapters {
		result[i] = NetworkInfo{
			Name:             stringOr(a.Name, Unknown),
			Manufacturer:     trimmed(a.Manufacturer),
			AdapterType:      trimmed(a.AdapterType),
			ConnectionID:     trimmed(a.NetConnectionID),
			SpeedBps:         a.Speed,
			MACAddress:       trimmed(a.MACAddress),
			ConnectionStatus: a.NetConnectionStatus,
			Connected:        valueOr(a.NetConnectionStatus, 0) == netConnectionConnected,
		}
	}
	return result, nil
}
