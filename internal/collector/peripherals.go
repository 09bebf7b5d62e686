package collector

import (
	"context"
	stderrors "errors"

	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32PnPEntity struct {
	Name         *string
	Manufacturer *string
	Status       *string
	PNPClass     *string
}

var pnpFields = []string{"Name", "Manufacturer", "Status", "PNPClass"}

// PnP class filters for each peripheral group. The USB class holds
// controllers and hubs as well as devices.
var (
	usbQuery       = source.Query{Class: "Win32_PnPEntity", Fields: pnpFields, Where: "PNPClass = 'USB'"}
	cameraQuery    = source.Query{Class: "Win32_PnPEntity", Fields: pnpFields, Where: "PNPClass = 'Camera' OR PNPClass = 'Image'"}
	bluetoothQuery = source.Query{Class: "Win32_PnPEntity", Fields: pnpFields, Where: "PNPClass = 'Bluetooth'"}
)

// Peripherals reads the three device groups. A failed group is left
// empty and its error joined into the result.
func (s *Session) Peripherals(ctx context.Context) (Peripherals, error) {
	usb, usbErr := s.PnPDevices(ctx, usbQuery)
	cams, camErr := s.PnPDevices(ctx, cameraQuery)
	bt, btErr := s.PnPDevices(ctx, bluetoothQuery)

	return Peripherals{USB: usb, Cameras: cams, Bluetooth: bt}, stderrors.Join(usbErr, camErr, btErr)
}

// PnPDevices reads the plug-and-play entities matching q. Failures
// yield an empty list alongside the error.
func (s *Session) PnPDevices(_ context.Context, q source.Query) ([]PnPDevice, error) {
	var entities []win32PnPEntity
	if err := s.query(q, &entities); err != nil {
		return []PnPDevice{}, err
	}

	result := make([]PnPDevice, len(entities))
	for i, e := range entities {
		result[i] = PnPDevice{
			Name:         stringOr(e.Name, Unknown),
			Manufacturer: trimmed(e.Manufacturer),
			Status:       trimmed(e.Status),
			PnPClass:     trimmed(e.PNPClass),
		}
	}
	return result, nil
}
