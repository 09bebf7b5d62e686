package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractChipset(t *testing.T) {
	tests := []struct {
		product string
		want    string
	}{
		{"ROG STRIX X670E-E GAMING WIFI", "X670E"},
		{"MAG X670 TOMAHAWK", "X670"},
		{"B650E AORUS MASTER", "B650E"},
		{"PRIME B650M-A", "B650"},
		{"TUF GAMING Z790-PLUS WIFI", "Z790"},
		{"pro b760m-a ddr4", "B760"},
		{"MS-7C02", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractChipset(tt.product))
		})
	}
}
