package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/djgen/djgen/internal/fielddef"
	"github.com/djgen/djgen/internal/fieldtype"
	"github.com/google/go-cmp/cmp"
)

// scriptedDriver replays canned answers. Input answers run through the
// prompt's validator the way survey would, and a rejected answer is skipped
// in favour of the next one.
type scriptedDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
	rejected []string
	menus    [][]string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	for len(d.inputs) > 0 {
		answer := d.inputs[0]
		d.inputs = d.inputs[1:]
		if cfg.Validator != nil {
			if err := cfg.Validator(answer); err != nil {
				d.rejected = append(d.rejected, answer)
				continue
			}
		}
		return answer, nil
	}
	return "", ErrAborted
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.menus = append(d.menus, cfg.Options)
	if len(d.selects) == 0 {
		return 0, ErrAborted
	}
	choice := d.selects[0]
	d.selects = d.selects[1:]
	return choice, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return cfg.Default, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func tagIndex(t *testing.T, reg *fieldtype.Registry, tag string) int {
	t.Helper()
	for i, tg := range reg.Tags() {
		if tg == tag {
			return i
		}
	}
	t.Fatalf("tag %q not registered", tag)
	return -1
}

func TestCollectorFields(t *testing.T) {
	reg := fieldtype.Builtin()
	driver := &scriptedDriver{
		inputs: []string{
			"title", "max_length=80:null",
			"author", "to=auth.User",
			"",
		},
		selects: []int{tagIndex(t, reg, "CharField"), tagIndex(t, reg, "ForeignKey")},
	}

	got, err := NewCollector(driver, reg).Fields(context.Background())
	if err != nil {
		t.Fatalf("Fields failed: %v", err)
	}

	want, err := fielddef.Parse([]string{"title:CharField:max_length=80:null", "author:ForeignKey:to=auth.User"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("interactive input should match parsed DSL (-want +got):\n%s", diff)
	}

	if len(driver.menus) != 2 || driver.menus[0][3] != "3. CharField" {
		t.Errorf("unexpected menu: %v", driver.menus)
	}
}

func TestCollectorRepromptsInvalidInput(t *testing.T) {
	reg := fieldtype.Builtin()
	driver := &scriptedDriver{
		inputs: []string{
			"2bad", "owner",
			"null", "to=Author",
			"",
		},
		selects: []int{tagIndex(t, reg, "ForeignKey")},
	}

	got, err := NewCollector(driver, reg).Fields(context.Background())
	if err != nil {
		t.Fatalf("Fields failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2bad", "null"}, driver.rejected); diff != "" {
		t.Errorf("rejected answers mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 1 || got[0].Name != "owner" || got[0].Args[0] != "to=Author" {
		t.Errorf("unexpected definitions: %+v", got)
	}
}

func TestCollectorNoFields(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{""}}
	got, err := NewCollector(driver, fieldtype.Builtin()).Fields(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no fields, got %v", got)
	}
}

func TestCollectorInvalidChoice(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"x"}, selects: []int{999}}
	_, err := NewCollector(driver, fieldtype.Builtin()).Fields(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not a valid choice") {
		t.Fatalf("expected invalid choice error, got %v", err)
	}
}

func TestCollectorAbort(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"x"}}
	_, err := NewCollector(driver, fieldtype.Builtin()).Fields(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestCollectorAsk(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"  ", " blog "}}
	got, err := NewCollector(driver, fieldtype.Builtin()).Ask(context.Background(), "What app does the model belong to?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "blog" {
		t.Errorf("Ask = %q, want blog", got)
	}
}

func TestCollectorConfirm(t *testing.T) {
	c := NewCollector(&scriptedDriver{confirms: []bool{false}}, fieldtype.Builtin())
	ok, err := c.Confirm(context.Background(), "Is this what you want?", true)
	if err != nil || ok {
		t.Errorf("Confirm = %v, %v; want false, nil", ok, err)
	}
}

func TestMenu(t *testing.T) {
	got := Menu([]string{"A", "B"})
	if diff := cmp.Diff([]string{"0. A", "1. B"}, got); diff != "" {
		t.Errorf("Menu mismatch (-want +got):\n%s", diff)
	}
}
