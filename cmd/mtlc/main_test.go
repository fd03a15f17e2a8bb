package main

import (
	"reflect"
	"testing"

	"github.com/csotherden/gorgonia-mtl/mtl"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"512", []int{512}, false},
		{"512,768", []int{512, 768}, false},
		{" 2, 64 ,128", []int{2, 64, 128}, false},
		{"4,x", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		got, err := parseShape(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseShape(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	if got := formatSize(mtl.Size{Width: 32, Height: 8, Depth: 1}); got != "32 x 8 x 1" {
		t.Fatalf("formatSize = %q", got)
	}
}
