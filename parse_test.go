package lifsim_test

import (
	"reflect"
	"testing"

	hw "lifsim"
)

func TestParseIOSpec(t *testing.T) {
	td := []struct {
		spec string
		pins []string
		err  bool
	}{
		{"", nil, false},
		{"a", []string{"a"}, false},
		{"a, b", []string{"a", "b"}, false},
		{"in[2], sel", []string{"in[0]", "in[1]", "sel"}, false},
		{"ui_in[3]", []string{"ui_in[0]", "ui_in[1]", "ui_in[2]"}, false},
		{"a b", nil, true},
		{"a[", nil, true},
		{"a[0]", nil, true},
		{"[2]", nil, true},
		{"a,", nil, true},
	}
	for _, d := range td {
		pins, err := hw.ParseIOSpec(d.spec)
		if d.err {
			if err == nil {
				t.Errorf("ParseIOSpec(%q): expected error, got %v", d.spec, pins)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseIOSpec(%q): %v", d.spec, err)
			continue
		}
		if !reflect.DeepEqual(pins, d.pins) {
			t.Errorf("ParseIOSpec(%q) = %v, expected %v", d.spec, pins, d.pins)
		}
	}
}

func TestParseConnections(t *testing.T) {
	td := []struct {
		c     string
		conns []hw.Connection
		err   bool
	}{
		{"", nil, false},
		{"a=x", []hw.Connection{{PP: "a", CP: []string{"x"}}}, false},
		{"a=x, b=y", []hw.Connection{
			{PP: "a", CP: []string{"x"}},
			{PP: "b", CP: []string{"y"}},
		}, false},
		{"in[0..1]=s[2..3]", []hw.Connection{
			{PP: "in[0]", CP: []string{"s[2]"}},
			{PP: "in[1]", CP: []string{"s[3]"}},
		}, false},
		{"out=a[0..1]", []hw.Connection{
			{PP: "out", CP: []string{"a[0]", "a[1]"}},
		}, false},
		{"in[0..1]=x", []hw.Connection{
			{PP: "in[0]", CP: []string{"x"}},
			{PP: "in[1]", CP: []string{"x"}},
		}, false},
		{"sel=true", []hw.Connection{{PP: "sel", CP: []string{"true"}}}, false},
		{"a[1]=b[7]", []hw.Connection{{PP: "a[1]", CP: []string{"b[7]"}}}, false},
		{"a", nil, true},
		{"a=", nil, true},
		{"=x", nil, true},
		{"a[0..2]=b[0..1]", nil, true},
		{"a[2..0]=b[0..2]", nil, true},
		{"a=x,", nil, true},
	}
	for _, d := range td {
		conns, err := hw.ParseConnections(d.c)
		if d.err {
			if err == nil {
				t.Errorf("ParseConnections(%q): expected error, got %v", d.c, conns)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseConnections(%q): %v", d.c, err)
			continue
		}
		if !reflect.DeepEqual(conns, d.conns) {
			t.Errorf("ParseConnections(%q) = %v, expected %v", d.c, conns, d.conns)
		}
	}
}
