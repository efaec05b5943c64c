/*
 * incar.go, part of maptool.
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
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

//Number is an element of a list-valued parameter. Int is true when the number
//was given without a decimal point or exponent, so it is written back the same way.
type Number struct {
	Value float64
	Int   bool
}

//Int returns an integer Number.
func Int(i int) Number { return Number{Value: float64(i), Int: true} }

//Float returns a floating point Number.
func Float(f float64) Number { return Number{Value: f} }

func (n Number) String() string {
	if n.Int {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return formatFloat(n.Value)
}

//Vector is the magnetic moment of one site in a non-collinear calculation.
type Vector [3]float64

func (v Vector) String() string {
	return formatFloat(v[0]) + " " + formatFloat(v[1]) + " " + formatFloat(v[2])
}

//Param is one tag-value pair, used to build records with a given order.
type Param struct {
	Key   string
	Value any
}

//P returns a Param. It is just shorter to write in templates.
func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

//Incar is an ordered set of INCAR parameters. The zero value is not usable,
//use New, FromMap or Parse.
type Incar struct {
	keys   []string
	values map[string]any
}

//New builds an Incar from the given parameters, in that order. String values are
//coerced, and a flat MAGMOM is grouped into vectors if LSORBIT or LNONCOLLINEAR are set.
func New(params ...Param) (*Incar, error) {
	I := &Incar{values: make(map[string]any, len(params))}
	for _, p := range params {
		if err := I.Set(p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	I.groupMagmom()
	return I, nil
}

//metadata entries that FromMap does not treat as parameters.
var metaKeys = map[string]bool{"@module": true, "@class": true, "comment": true}

//FromMap builds an Incar from a map and returns it together with the "comment" entry of the
//map, if any. The "@module" and "@class" entries are dropped. If MAGMOM contains
//maps, the "moment" entry of each is taken as the 3-component moment of a site.
//Since maps are not ordered, the parameters are inserted in alphabetical order.
func FromMap(d map[string]any) (*Incar, string, error) {
	var comment string
	if c, ok := d["comment"]; ok && c != nil {
		comment = fmt.Sprint(c)
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		if metaKeys[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToUpper(keys[i]) < strings.ToUpper(keys[j])
	})
	params := make([]Param, 0, len(keys))
	for _, k := range keys {
		v := d[k]
		if strings.TrimSpace(strings.ToUpper(k)) == "MAGMOM" {
			m, err := magmomFromDicts(v)
			if err != nil {
				return nil, "", errDecorate(err, "FromMap")
			}
			v = m
		}
		params = append(params, Param{k, v})
	}
	I, err := New(params...)
	if err != nil {
		return nil, "", err
	}
	return I, comment, nil
}

//magmomFromDicts returns v unchanged unless it is a list of maps, in
//which case each map is turned into a Vector.
func magmomFromDicts(v any) (any, error) {
	list, ok := v.([]any)
	if ok && len(list) > 0 {
		if _, isMap := list[0].(map[string]any); !isMap {
			return v, nil
		}
		ret := make([]Vector, 0, len(list))
		for i, e := range list {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, Error{fmt.Sprintf("MAGMOM entry %d is not a map", i), "", []string{"magmomFromDicts"}, true}
			}
			vec, ok := toVector(m["moment"])
			if !ok {
				return nil, Error{fmt.Sprintf("MAGMOM entry %d has no 3-component moment", i), "", []string{"magmomFromDicts"}, true}
			}
			ret = append(ret, vec)
		}
		return ret, nil
	}
	if maps, ok := v.([]map[string]any); ok {
		l := make([]any, len(maps))
		for i := range maps {
			l[i] = maps[i]
		}
		return magmomFromDicts(l)
	}
	return v, nil
}

//Set adds or replaces the parameter key. The key is stripped of surrounding space
//and upper-cased. String values are stripped and coerced according to the key,
//other values are stored as they are (slices are copied to the record types).
//A nil value removes the parameter.
func (I *Incar) Set(key string, val any) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return Error{"empty parameter name", "", []string{"Set"}, false}
	}
	if val == nil {
		I.Delete(key)
		return nil
	}
	if s, ok := val.(string); ok {
		v, err := Coerce(key, strings.TrimSpace(s))
		if err != nil {
			return err
		}
		val = v
	} else {
		val = normalize(val)
	}
	if _, ok := I.values[key]; !ok {
		I.keys = append(I.keys, key)
	}
	I.values[key] = val
	return nil
}

//Get returns the value of a parameter and whether it is present.
func (I *Incar) Get(key string) (any, bool) {
	v, ok := I.values[strings.ToUpper(strings.TrimSpace(key))]
	return v, ok
}

//Delete removes a parameter. It does nothing if the parameter is not there.
func (I *Incar) Delete(key string) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if _, ok := I.values[key]; !ok {
		return
	}
	delete(I.values, key)
	for i, k := range I.keys {
		if k == key {
			I.keys = append(I.keys[:i], I.keys[i+1:]...)
			break
		}
	}
}

//Keys returns the parameter names in insertion order.
func (I *Incar) Keys() []string {
	ret := make([]string, len(I.keys))
	copy(ret, I.keys)
	return ret
}

//Len returns the number of parameters
func (I *Incar) Len() int {
	return len(I.keys)
}

//Int returns the value of key as an int. The second value is false if the key
//is missing or not numeric.
func (I *Incar) Int(key string) (int, bool) {
	v, ok := I.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

//Float returns the value of key as a float64. The second value is false if the key
//is missing or not numeric.
func (I *Incar) Float(key string) (float64, bool) {
	v, ok := I.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

//Truthy returns whether the parameter is present and set to a "true" value:
//true, a non-zero number, a non-empty string or list.
func (I *Incar) Truthy(key string) bool {
	v, ok := I.Get(key)
	if !ok {
		return false
	}
	return truthy(v)
}

//Clone returns a deep enough copy of the record. Slices are copied.
func (I *Incar) Clone() *Incar {
	ret := &Incar{keys: I.Keys(), values: make(map[string]any, len(I.values))}
	for k, v := range I.values {
		ret.values[k] = normalize(v)
	}
	return ret
}

func (I *Incar) noncollinear() bool {
	return I.Truthy("LSORBIT") || I.Truthy("LNONCOLLINEAR")
}

//groupMagmom turns a flat numeric MAGMOM into one Vector per site when the
//calculation is non-collinear. Trailing components that do not complete a site are dropped.
func (I *Incar) groupMagmom() {
	m, ok := I.values["MAGMOM"].([]Number)
	if !ok || len(m) == 0 || !I.noncollinear() {
		return
	}
	vecs := make([]Vector, 0, len(m)/3)
	for i := 0; i+3 <= len(m); i += 3 {
		vecs = append(vecs, Vector{m[i].Value, m[i+1].Value, m[i+2].Value})
	}
	I.values["MAGMOM"] = vecs
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []Number:
		return len(t) > 0
	case []Vector:
		return len(t) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return true
}

//normalize maps the numeric and slice types a caller may use to the ones
//the record keeps (int, float64, []Number, []Vector). Slices are always copied.
func normalize(v any) any {
	switch t := v.(type) {
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint:
		return int(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return int(t)
	case float32:
		return float64(t)
	case Number:
		if t.Int {
			return int(t.Value)
		}
		return t.Value
	case []Number:
		return append([]Number(nil), t...)
	case []int:
		ret := make([]Number, len(t))
		for i, e := range t {
			ret[i] = Int(e)
		}
		return ret
	case []float64:
		ret := make([]Number, len(t))
		for i, e := range t {
			ret[i] = Float(e)
		}
		return ret
	case []Vector:
		return append([]Vector(nil), t...)
	case [][3]float64:
		ret := make([]Vector, len(t))
		for i, e := range t {
			ret[i] = Vector(e)
		}
		return ret
	case []any:
		if nums, ok := toNumbers(t); ok {
			return nums
		}
		if len(t) > 0 {
			vecs := make([]Vector, 0, len(t))
			for _, e := range t {
				vec, ok := toVector(e)
				if !ok {
					return append([]any(nil), t...)
				}
				vecs = append(vecs, vec)
			}
			return vecs
		}
		return append([]any(nil), t...)
	}
	return v
}

func toNumber(v any) (Number, bool) {
	switch n := normalize(v).(type) {
	case int:
		return Int(n), true
	case float64:
		return Float(n), true
	}
	return Number{}, false
}

func toNumbers(l []any) ([]Number, bool) {
	ret := make([]Number, 0, len(l))
	for _, e := range l {
		n, ok := toNumber(e)
		if !ok {
			return nil, false
		}
		ret = append(ret, n)
	}
	return ret, true
}

func toVector(v any) (Vector, bool) {
	var nums []Number
	switch t := v.(type) {
	case Vector:
		return t, true
	case [3]float64:
		return Vector(t), true
	case []any:
		n, ok := toNumbers(t)
		if !ok {
			return Vector{}, false
		}
		nums = n
	default:
		n, ok := normalize(v).([]Number)
		if !ok {
			return Vector{}, false
		}
		nums = n
	}
	if len(nums) != 3 {
		return Vector{}, false
	}
	return Vector{nums[0].Value, nums[1].Value, nums[2].Value}, true
}
