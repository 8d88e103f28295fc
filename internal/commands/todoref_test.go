package commands

import (
	"errors"
	"testing"
)

func TestParseTodoRef(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr string
	}{
		{args: []string{"1"}, want: 1},
		{args: []string{"42", "extra"}, want: 42},
		{args: []string{"#3"}, want: 3},
		{args: []string{"007"}, want: 7},
		{args: []string{"0"}, wantErr: "invalid todo reference: 0"},
		{args: []string{"-1"}, wantErr: "invalid todo reference: -1"},
		{args: []string{"#"}, wantErr: "invalid todo reference: #"},
		{args: []string{"a1"}, wantErr: "invalid todo reference: a1"},
		{args: []string{"99999999999999999999"}, wantErr: "invalid todo reference: 99999999999999999999"},
	}

	for _, tt := range tests {
		got, err := ParseTodoRef(tt.args)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ParseTodoRef(%q): expected error %q, got %v", tt.args, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTodoRef(%q): unexpected error %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTodoRef(%q): expected %d, got %d", tt.args, tt.want, got)
		}
	}
}

func TestParseTodoRef_Required(t *testing.T) {
	if _, err := ParseTodoRef(nil); !errors.Is(err, ErrRefRequired) {
		t.Errorf("expected ErrRefRequired, got %v", err)
	}
}
