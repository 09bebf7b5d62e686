//go:build windows

package source

import (
	"fmt"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"golang.org/x/sys/windows/registry"
)

const displayClassKey = `SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`

type driverRegistry struct{}

// NewDriverRegistry returns the HKLM display class reader.
func NewDriverRegistry() DriverRegistry {
	return driverRegistry{}
}

func (driverRegistry) AdapterKeys() ([]string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrConnectionUnavailable, err)
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrQueryFailed, err)
	}

	var keys []string
	for _, name := range names {
		if isAdapterKey(name) {
			keys = append(keys, name)
		}
	}
	return keys, nil
}

func (driverRegistry) StringValue(key, name string) (string, error) {
	k, err := openAdapterKey(key)
	if err != nil {
		return "", err
	}
	defer k.Close()

	s, _, err := k.GetStringValue(name)
	if err != nil {
		return "", errors.New().Wrap(errors.ErrFieldMissing, err).WithData(name)
	}
	return s, nil
}

func (driverRegistry) SizeValue(key, name string) (uint64, error) {
	k, err := openAdapterKey(key)
	if err != nil {
		return 0, err
	}
	defer k.Close()

	if v, _, err := k.GetIntegerValue(name); err == nil {
		return v, nil
	}

	b, _, err := k.GetBinaryValue(name)
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrFieldMissing, err).WithData(name)
	}

	v, ok := decodeSize(b)
	if !ok {
		return 0, errors.New().WithData(errors.ErrFieldMissing, fmt.Sprintf("%s: %d byte value", name, len(b)))
	}
	return v, nil
}

func openAdapterKey(key string) (registry.Key, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey+`\`+key, registry.QUERY_VALUE)
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrQueryFailed, err).WithData(key)
	}
	return k, nil
}
