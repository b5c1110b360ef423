package ai

import "testing"

func TestCleanJSONString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := cleanJSONString(tc.in); got != tc.want {
			t.Errorf("cleanJSONString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
