package tasks

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ctms-cli/internal/shared"
)

func TestReadChanges(t *testing.T) {
	t.Run("aggregates rows by email_id in first-seen order", func(t *testing.T) {
		input := strings.Join([]string{
			"email_id,name,subscribed",
			"e2,alpha,true",
			"e1,beta,false",
			"e2,gamma,true",
			"e3,alpha,true",
		}, "\n")

		set, err := ReadChanges(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		ids := set.EmailIDs()
		want := []string{"e2", "e1", "e3"}
		if len(ids) != len(want) {
			t.Fatalf("expected %d contacts, got %d", len(want), len(ids))
		}
		for i, id := range want {
			if ids[i] != id {
				t.Errorf("expected contact %d to be %s, got %s", i, id, ids[i])
			}
		}

		changes := set.Changes("e2")
		if len(changes) != 2 {
			t.Fatalf("expected 2 changes for e2, got %d", len(changes))
		}
		if changes[0].Name != "alpha" || changes[1].Name != "gamma" {
			t.Errorf("expected file order alpha,gamma, got %s,%s", changes[0].Name, changes[1].Name)
		}
	})

	t.Run("subscribed coerces to true only for the literal true", func(t *testing.T) {
		cases := []struct {
			value string
			want  bool
		}{
			{"true", true},
			{"TRUE", true},
			{"True", true},
			{"false", false},
			{"False", false},
			{"1", false},
			{"yes", false},
			{"", false},
			{" true", false},
		}

		for _, tc := range cases {
			input := "email_id,name,subscribed\ne1,slug,\"" + tc.value + "\"\n"
			set, err := ReadChanges(strings.NewReader(input))
			if err != nil {
				t.Fatalf("value %q: expected no error, got %v", tc.value, err)
			}
			got := set.Changes("e1")[0].Subscribed
			if got != tc.want {
				t.Errorf("value %q: expected subscribed=%v, got %v", tc.value, tc.want, got)
			}
		}
	})

	t.Run("conflicting duplicate rows are forwarded verbatim", func(t *testing.T) {
		input := strings.Join([]string{
			"email_id,name,subscribed",
			"e1,slug,true",
			"e1,slug,false",
		}, "\n")

		set, err := ReadChanges(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		changes := set.Changes("e1")
		if len(changes) != 2 {
			t.Fatalf("expected both rows kept, got %d", len(changes))
		}
		if !changes[0].Subscribed || changes[1].Subscribed {
			t.Error("expected file order true,false to be preserved")
		}
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		input := strings.Join([]string{
			"email,email_id,name,subscribed",
			"a@example.com,e1,slug,true",
		}, "\n")

		set, err := ReadChanges(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if set.Len() != 1 {
			t.Fatalf("expected 1 contact, got %d", set.Len())
		}
		if set.Changes("e1")[0].Name != "slug" {
			t.Errorf("expected name slug, got %s", set.Changes("e1")[0].Name)
		}
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := ReadChanges(strings.NewReader(""))
		if !errors.Is(err, shared.ErrMalformedCSV) {
			t.Errorf("expected ErrMalformedCSV, got %v", err)
		}
	})

	t.Run("missing required column fails", func(t *testing.T) {
		input := "email_id,name\ne1,slug\n"
		_, err := ReadChanges(strings.NewReader(input))
		if !errors.Is(err, shared.ErrMalformedCSV) {
			t.Errorf("expected ErrMalformedCSV, got %v", err)
		}
		if err == nil || !strings.Contains(err.Error(), "subscribed") {
			t.Errorf("expected error naming the missing column, got %v", err)
		}
	})

	t.Run("row with missing fields fails", func(t *testing.T) {
		input := "email_id,name,subscribed\ne1,slug\n"
		_, err := ReadChanges(strings.NewReader(input))
		if !errors.Is(err, shared.ErrMalformedCSV) {
			t.Errorf("expected ErrMalformedCSV, got %v", err)
		}
	})

	t.Run("header only yields empty set", func(t *testing.T) {
		set, err := ReadChanges(strings.NewReader("email_id,name,subscribed\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if set.Len() != 0 {
			t.Errorf("expected empty set, got %d contacts", set.Len())
		}
	})
}
