package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32DiskDrive struct {
	Model            *string
	Size             *uint64
	MediaType        *string
	InterfaceType    *string
	Status           *string
	SerialNumber     *string
	FirmwareRevision *string
	Partitions       *uint32
}

var diskDriveQuery = source.Query{
	Class: "Win32_DiskDrive",
	Fields: []string{
		"Model", "Size", "MediaType", "InterfaceType", "Status",
		"SerialNumber", "FirmwareRevision", "Partitions",
	},
}

// Disks reads physical disks.
func (s *Session) Disks(_ context.Context) ([]DiskInfo, error) {
	var drives []win32DiskDrive
	if err := s.query(diskDriveQuery, &drives); err != nil {
		return nil, errors.New().Wrap(errors.ErrNoSourceAvailable, err).WithData("disk")
	}

	result := make([]DiskInfo, len(drives))
	for i, d := range drives {
		result[i] = DiskInfo{
			Model:            stringOr(d.Model, Unknown),
			SizeBytes:        d.Size,
			MediaType:        stringOr(d.MediaType, Unknown),
			InterfaceType:    stringOr(d.InterfaceType, Unknown),
			Status:           stringOr(d.Status, Unknown),
			SerialNumber:     stringOr(d.SerialNumber, ""),
			FirmwareRevision: stringOr(d.FirmwareRevision, ""),
			Partitions:       valueOr(d.Partitions, 0),
		}
	}
	return result, nil
}
