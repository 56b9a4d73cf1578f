package main

import "testing"

func TestContinues(t *testing.T) {
	tests := []struct {
		lines []string
		want  bool
	}{
		{[]string{"a = 1"}, false},
		{[]string{"if a:"}, true},
		{[]string{"def f(x):  "}, true},
		{[]string{"d = {'a': 1}"}, false},
		{[]string{"while a:", "    a -= 1"}, true},
	}
	for _, tt := range tests {
		if got := continues(tt.lines); got != tt.want {
			t.Errorf("continues(%q) = %v, want %v", tt.lines, got, tt.want)
		}
	}
}
