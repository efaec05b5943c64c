/*
 * potcar.go, part of maptool.
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

package potcar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/maptool"
	"github.com/rmera/maptool/internal/zio"
)

//Pseudo holds the header information of one pseudopotential in a POTCAR.
type Pseudo struct {
	Titel   string //as in "PAW_PBE Fe_pv 02Aug2007"
	Symbol  string //as in "Fe_pv"
	Element string //as in "Fe"
	VRHFIN  string
	ENMAX   float64 //eV
	ENMIN   float64 //eV
	ZVAL    float64
}

//Functionals maps the functional names accepted by Assemble to the
//subdirectory of the pseudopotential library where they are.
var Functionals = map[string]string{
	"PBE":     "POT_GGA_PAW_PBE",
	"PBE_52":  "POT_GGA_PAW_PBE_52",
	"PBE_54":  "POT_GGA_PAW_PBE_54",
	"LDA":     "POT_LDA_PAW",
	"LDA_52":  "POT_LDA_PAW_52",
	"LDA_54":  "POT_LDA_PAW_54",
	"PW91":    "POT_GGA_PAW_PW91",
	"LDA_US":  "POT_LDA_US",
	"PW91_US": "POT_GGA_US_PW91",
}

//Read scans a POTCAR, possibly with several concatenated pseudopotentials, and
//returns the header information of each, in order.
func Read(r io.Reader) ([]*Pseudo, error) {
	inp := bufio.NewReader(r)
	ret := make([]*Pseudo, 0, 4)
	var cur *Pseudo
	var err error
	var l string
	for l, err = inp.ReadString('\n'); err == nil || (err == io.EOF && l != ""); l, err = inp.ReadString('\n') {
		switch {
		case strings.Contains(l, "VRHFIN"):
			if cur == nil {
				cur = &Pseudo{}
				ret = append(ret, cur)
			}
			cur.VRHFIN = afterEqual(l)
		case strings.Contains(l, "TITEL"):
			if cur == nil || cur.Symbol != "" {
				cur = &Pseudo{}
				ret = append(ret, cur)
			}
			cur.Titel = afterEqual(l)
			f := strings.Fields(cur.Titel)
			if len(f) < 2 {
				return nil, Error{"malformed TITEL line: " + strings.TrimSpace(l), "", []string{"Read"}, true}
			}
			cur.Symbol = f[1]
			cur.Element = element(cur.Symbol)
		case cur == nil:
			//between datasets
		case strings.Contains(l, "ENMAX") || strings.Contains(l, "ZVAL"):
			if err := numbers(l, cur); err != nil {
				return nil, errDecorate(err, "Read")
			}
		case strings.Contains(l, "End of Dataset"):
			cur = nil
		}
		if err == io.EOF {
			break
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, Error{err.Error(), "", []string{"Read"}, true}
	}
	if len(ret) == 0 {
		return nil, Error{"no pseudopotential found", "", []string{"Read"}, true}
	}
	for _, p := range ret {
		if p.Symbol == "" {
			return nil, Error{"pseudopotential without TITEL", "", []string{"Read"}, true}
		}
	}
	return ret, nil
}

//ReadFile reads the headers of a POTCAR file. Files ending in .gz or .zst are decompressed.
func ReadFile(name string) ([]*Pseudo, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"ReadFile"}, true}
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			return nil, errDecorate(e, "ReadFile")
		}
		return nil, err
	}
	return p, nil
}

//Elements returns the element of each pseudopotential, in order.
func Elements(pseudos []*Pseudo) []string {
	ret := make([]string, len(pseudos))
	for i, p := range pseudos {
		ret[i] = p.Element
	}
	return ret
}

//MaxENMAX returns the largest ENMAX among the pseudopotentials.
func MaxENMAX(pseudos []*Pseudo) float64 {
	var m float64
	for _, p := range pseudos {
		if p.ENMAX > m {
			m = p.ENMAX
		}
	}
	return m
}

func afterEqual(l string) string {
	if i := strings.Index(l, "="); i >= 0 {
		return strings.TrimSpace(l[i+1:])
	}
	return strings.TrimSpace(l)
}

//element returns the element symbol of a pseudopotential symbol (Fe_pv -> Fe, H.75 -> H).
func element(symbol string) string {
	if i := strings.IndexAny(symbol, "_."); i > 0 {
		return symbol[:i]
	}
	return symbol
}

//numbers reads lines such as "   ENMAX  =  293.238; ENMIN  =  220.000 eV".
func numbers(l string, p *Pseudo) error {
	for _, part := range strings.Split(l, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		f := strings.Fields(kv[1])
		if len(f) == 0 {
			continue
		}
		var dest *float64
		switch key {
		case "ENMAX":
			dest = &p.ENMAX
		case "ENMIN":
			dest = &p.ENMIN
		case "ZVAL":
			dest = &p.ZVAL
		default:
			continue
		}
		v, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return Error{fmt.Sprintf("bad %s value %q", key, f[0]), "", []string{"numbers"}, true}
		}
		*dest = v
	}
	return nil
}

//candidates returns the places where the POTCAR for symbol may be, in the order they are tried.
func candidates(dir, symbol string) []string {
	return []string{
		filepath.Join(dir, symbol, "POTCAR"),
		filepath.Join(dir, symbol, "POTCAR.gz"),
		filepath.Join(dir, symbol, "POTCAR.zst"),
		filepath.Join(dir, "POTCAR."+symbol),
		filepath.Join(dir, "POTCAR."+symbol+".gz"),
	}
}

//Find returns the path of the POTCAR for symbol in the library libdir, for the given functional.
func Find(libdir, functional, symbol string) (string, error) {
	sub, ok := Functionals[strings.ToUpper(functional)]
	if !ok {
		return "", Error{fmt.Sprintf("unknown functional %q", functional), "", []string{"Find"}, true}
	}
	dir := filepath.Join(libdir, sub)
	for _, c := range candidates(dir, symbol) {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", Error{fmt.Sprintf("no POTCAR for %s", symbol), dir, []string{"Find"}, true}
}

//Assemble writes to w the concatenation of the POTCARs for symbols, in that order,
//taken from the library libdir for the given functional.
func Assemble(libdir, functional string, symbols []string, w io.Writer) error {
	if len(symbols) == 0 {
		return Error{"no symbols given", "", []string{"Assemble"}, true}
	}
	for _, s := range symbols {
		name, err := Find(libdir, functional, s)
		if err != nil {
			return errDecorate(err, "Assemble")
		}
		data, err := zio.ReadAll(name)
		if err != nil {
			return Error{err.Error(), name, []string{"Assemble"}, true}
		}
		if _, err := w.Write(data); err != nil {
			return Error{err.Error(), "", []string{"Assemble"}, true}
		}
	}
	return nil
}

//AssembleFile is like Assemble, but writes to the file name. Files ending in
//.gz or .zst are compressed.
func AssembleFile(libdir, functional string, symbols []string, name string) error {
	f, err := zio.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"AssembleFile"}, true}
	}
	if err := Assemble(libdir, functional, symbols, f); err != nil {
		f.Close()
		return errDecorate(err, "AssembleFile")
	}
	if err := f.Close(); err != nil {
		return Error{err.Error(), name, []string{"AssembleFile"}, true}
	}
	return nil
}

//Error is the general structure for errors in this package. It fulfills maptool.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return "potcar: " + err.message
	}
	return fmt.Sprintf("potcar %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error, if any
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error
func (err Error) Format() string { return "potcar" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if err2, ok := err.(maptool.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
