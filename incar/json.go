/*
 * json.go, part of maptool.
 *
 * Copyright 2024 The maptool authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package incar

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	jsonModule = "github.com/rmera/maptool/incar"
	jsonClass  = "Incar"
)

//MarshalJSON encodes the record as a JSON object with the parameters, in order,
//plus "@module" and "@class" entries. Floats keep their decimal point, and
//non-collinear moments are written as {"moment": [x, y, z]} objects.
func (I *Incar) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for _, k := range I.keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := jsonValue(I.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
		b.WriteByte(',')
	}
	b.WriteString(`"@module":"` + jsonModule + `","@class":"` + jsonClass + `"}`)
	return b.Bytes(), nil
}

func jsonValue(v any) ([]byte, error) {
	switch t := v.(type) {
	case float64:
		return []byte(formatFloat(t)), nil
	case []Number:
		s := make([]string, len(t))
		for i, n := range t {
			s[i] = n.String()
		}
		return []byte("[" + strings.Join(s, ",") + "]"), nil
	case []Vector:
		s := make([]string, len(t))
		for i, n := range t {
			s[i] = `{"moment":[` + formatFloat(n[0]) + "," + formatFloat(n[1]) + "," + formatFloat(n[2]) + "]}"
		}
		return []byte("[" + strings.Join(s, ",") + "]"), nil
	}
	return json.Marshal(v)
}

//UnmarshalJSON decodes an object written by MarshalJSON, or any flat JSON object
//of parameters, through FromMap. Numbers without decimal point or exponent are ints.
func (I *Incar) UnmarshalJSON(data []byte) error {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var m map[string]any
	if err := d.Decode(&m); err != nil {
		return Error{err.Error(), "", []string{"UnmarshalJSON"}, true}
	}
	for k, v := range m {
		m[k] = fromJSON(v)
	}
	J, _, err := FromMap(m)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	*I = *J
	return nil
}

func fromJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		n, err := smartNumber(t.String())
		if err != nil {
			f, _ := t.Float64()
			return f
		}
		if n.Int {
			return int(n.Value)
		}
		return n.Value
	case []any:
		for i := range t {
			t[i] = fromJSON(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = fromJSON(t[k])
		}
		return t
	}
	return v
}
