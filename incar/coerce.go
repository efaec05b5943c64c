/*
 * coerce.go, part of maptool.
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
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

//The tags with a known type. Anything else goes through the untyped conversion chain.
var (
	listKeys = keySet("LDAUU", "LDAUL", "LDAUJ", "MAGMOM", "DIPOL",
		"LANGEVIN_GAMMA", "QUAD_EFG", "EINT")
	boolKeys = keySet("LDAU", "LWAVE", "LSCALU", "LCHARG", "LPLANE", "LUSE_VDW",
		"LHFCALC", "ADDGRID", "LSORBIT", "LNONCOLLINEAR")
	floatKeys = keySet("EDIFF", "SIGMA", "TIME", "ENCUTFOCK", "HFSCREEN",
		"POTIM", "EDIFFG", "AGGAC", "PARAM1", "PARAM2")
	intKeys = keySet("NSW", "NBANDS", "NELMIN", "ISIF", "IBRION", "ISPIN",
		"ICHARG", "NELM", "ISMEAR", "NPAR", "LDAUPRINT", "LMAXMIX",
		"ENCUT", "NSIM", "NKRED", "NUPDOWN", "ISPIND", "LDAUTYPE",
		"IVDW")
)

var (
	listToken  = regexp.MustCompile(`(-?\d+\.?\d*)\*?(-?\d+\.?\d*)?\*?(-?\d+\.?\d*)?`)
	boolValue  = regexp.MustCompile(`^\.?([TFtf])[A-Za-z]*\.?`)
	floatValue = regexp.MustCompile(`^-?\d*\.?\d*[eE]?-?\d*`)
	intValue   = regexp.MustCompile(`^-?[0-9]+`)
)

func keySet(keys ...string) map[string]bool {
	ret := make(map[string]bool, len(keys))
	for _, k := range keys {
		ret[k] = true
	}
	return ret
}

//Coerce converts the textual value of the parameter key to the Go type the
//parameter takes. Values that are not strings are returned unchanged.
//The only error returned is a *BoolError, when a boolean tag has a value
//that does not start with T or F. Other malformed values fall back to the
//untyped chain: int, float64, bool (if the value contains "true" or "false")
//and finally the capitalized string.
func Coerce(key string, val any) (any, error) {
	s, ok := val.(string)
	if !ok {
		return val, nil
	}
	key = strings.ToUpper(strings.TrimSpace(key))
	switch {
	case listKeys[key]:
		if l, ok := parseList(s); ok {
			return l, nil
		}
	case boolKeys[key]:
		m := boolValue.FindStringSubmatch(s)
		if m == nil {
			return nil, &BoolError{Key: key, Value: s}
		}
		return m[1] == "T" || m[1] == "t", nil
	case floatKeys[key]:
		if f, err := strconv.ParseFloat(floatValue.FindString(s), 64); err == nil {
			return f, nil
		}
	case intKeys[key]:
		if i, err := strconv.Atoi(intValue.FindString(s)); err == nil {
			return i, nil
		}
	}
	return untyped(s), nil
}

//parseList expands a list value, such as "2*0.0 1.5" or "3*2*1.0", into numbers.
//A token "a*b*c" where a contains the digit 3 means a*b copies of c (one 3-vector
//per site in non-collinear runs), "a*b" means a copies of b.
func parseList(s string) ([]Number, bool) {
	ret := make([]Number, 0)
	for _, tok := range listToken.FindAllStringSubmatch(s, -1) {
		switch {
		case tok[3] != "" && strings.Contains(tok[1], "3"):
			n, err := smartNumber(tok[3])
			if err != nil {
				return nil, false
			}
			a, err1 := strconv.Atoi(tok[1])
			b, err2 := strconv.Atoi(tok[2])
			if err1 != nil || err2 != nil {
				return nil, false
			}
			ret = appendRepeat(ret, n, a*b)
		case tok[2] != "":
			n, err := smartNumber(tok[2])
			if err != nil {
				return nil, false
			}
			a, err := strconv.Atoi(tok[1])
			if err != nil {
				return nil, false
			}
			ret = appendRepeat(ret, n, a)
		default:
			n, err := smartNumber(tok[1])
			if err != nil {
				return nil, false
			}
			ret = append(ret, n)
		}
	}
	return ret, true
}

func appendRepeat(l []Number, n Number, times int) []Number {
	for i := 0; i < times; i++ {
		l = append(l, n)
	}
	return l
}

//smartNumber parses s as an integer unless it has a decimal point or an exponent.
func smartNumber(s string) (Number, error) {
	if strings.Contains(s, ".") || strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		return Float(f), err
	}
	i, err := strconv.Atoi(s)
	return Int(i), err
}

func untyped(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	l := strings.ToLower(s)
	if strings.Contains(l, "true") {
		return true
	}
	if strings.Contains(l, "false") {
		return false
	}
	return capitalize(strings.TrimSpace(s))
}

//capitalize upper-cases the first letter of s and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}
