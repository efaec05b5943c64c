/*
 * prompt.go, part of maptool.
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

//Package prompt asks the user for input on the console until a valid answer is given.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

//Quit is the answer that abandons any question.
const Quit = "88"

//ErrQuit is returned when the user answers Quit.
var ErrQuit = errors.New("prompt: quit requested")

//LineReader reads one line of user input after showing a prompt.
type LineReader interface {
	SetPrompt(string)
	Readline() (string, error)
}

//Prompter asks questions through a LineReader. Invalid answers are reported on
//Out and the question is repeated.
type Prompter struct {
	In  LineReader
	Out io.Writer
}

//New returns a Prompter.
func New(in LineReader, out io.Writer) *Prompter {
	return &Prompter{In: in, Out: out}
}

//Console returns a Prompter on the terminal, and a function to release it.
func Console() (*Prompter, func() error, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("prompt: %w", err)
	}
	return New(rl, os.Stderr), rl.Close, nil
}

//Ask shows question and reads answers until valid accepts one, which is returned
//without surrounding spaces. Empty answers are ignored. If the user answers Quit,
//ErrQuit is returned. Errors from the reader, including io.EOF and readline.ErrInterrupt,
//are returned as they are.
func (P *Prompter) Ask(question string, valid func(string) error) (string, error) {
	P.In.SetPrompt(question + " ")
	for {
		line, err := P.In.Readline()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == Quit:
			return "", ErrQuit
		}
		if valid == nil {
			return line, nil
		}
		if err := valid(line); err != nil {
			fmt.Fprintf(P.Out, "Invalid input: %v. Try again, or %s to quit.\n", err, Quit)
			continue
		}
		return line, nil
	}
}

//Menu writes the options as "key >>> description" lines, in the given order.
func Menu(w io.Writer, title string, keys, descriptions []string) {
	fmt.Fprintln(w, title)
	for i, k := range keys {
		fmt.Fprintf(w, "%s >>> %s\n", k, descriptions[i])
	}
}
