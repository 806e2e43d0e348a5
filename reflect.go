// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lifsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built with MakePart must
// implement. Update is called once per simulation step.
type Updater interface {
	Update(*Circuit)
}

// MakePart builds a PartSpec for a custom component defined as a struct with
// pin fields. newFn must return a fresh Updater for every call; the returned
// spec mounts one instance per use, filling its pin fields from the socket.
//
// Pin fields are identified by field tags. The tag must be `hw:"in"` or
// `hw:"out"`. By default the pin name is the field name in lowercase; a
// specific name can be forced by adding it in the tag: `hw:"in,rst_n"`.
// Single pins are fields of type int, buses are arrays of int.
//
//	type counter struct {
//		Ena int    `hw:"in"`
//		Q   [4]int `hw:"out"`
//		n   uint8
//	}
//
// Fields without a hw tag are left untouched, so newFn can preset internal
// state.
func MakePart(newFn func() Updater) *PartSpec {
	typ := reflect.TypeOf(newFn())
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported kind %q for updater %q", k, typ.Name()))
	}

	sp := &PartSpec{
		Name: typ.Name(),
	}

	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		pin, isInput, ok := pinTag(f)
		if !ok {
			continue
		}
		ft := f.Type
		switch {
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int:
			for i := 0; i < ft.Len(); i++ {
				if isInput {
					sp.Inputs = append(sp.Inputs, BusPinName(pin, i))
				} else {
					sp.Outputs = append(sp.Outputs, BusPinName(pin, i))
				}
			}
		case ft.Kind() == reflect.Int:
			if isInput {
				sp.Inputs = append(sp.Inputs, pin)
			} else {
				sp.Outputs = append(sp.Outputs, pin)
			}
		default:
			panic(errors.Errorf("unsupported type %q for pin field %q in %q", ft.Kind(), f.Name, typ.Name()))
		}
	}
	sp.Mount = mountUpdater(newFn, typ)
	return sp
}

func pinTag(f reflect.StructField) (pin string, isInput, ok bool) {
	tag, ok := f.Tag.Lookup("hw")
	if !ok {
		return "", false, false
	}
	pin = strings.ToLower(f.Name)
	tv := strings.Split(tag, ",")
	if len(tv) == 2 && tv[1] != "" {
		pin = tv[1]
	}
	switch tv[0] {
	case "in":
		return pin, true, true
	case "out":
		return pin, false, true
	}
	panic(errors.Errorf("unsupported tag %q for field %q", tag, f.Name))
}

func mountUpdater(newFn func() Updater, typ reflect.Type) MountFn {
	return func(s *Socket) []Component {
		u := newFn()
		e := reflect.ValueOf(u)
		if e.Kind() == reflect.Ptr {
			e = e.Elem()
		}
		n := typ.NumField()
		for i := 0; i < n; i++ {
			f := typ.Field(i)
			pin, _, ok := pinTag(f)
			if !ok {
				continue
			}
			fv := e.Field(i)
			if ft := f.Type; ft.Kind() == reflect.Array {
				for i := 0; i < fv.Len(); i++ {
					fv.Index(i).SetInt(int64(s.Pin(BusPinName(pin, i))))
				}
			} else {
				fv.SetInt(int64(s.Pin(pin)))
			}
		}
		return []Component{u.Update}
	}
}
