package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var seedPrograms = []string{
	"",
	"int a;\na = 1;\ncout a;\n",
	"int a;\ncin a;\ncout a + 1;\n",
	"main() { int x; x = 3; if x > 2 { cout x; } else { cout 0; } }",
	"double r; r = 1.5e3; cout r / 2;",
	"int i; i = 0; while i < 10 { i++; } cout i;",
	"int n; n = 5; do { n--; } while n > 0; cout n;",
	"int n; n = 0; repeat { n++; } until n == 3; cout n;",
	"/* unterminated",
	"int a; a = 1 @ 2;",
	"int a; a = (1 + ;",
	"float f; int i; f = 2.5; i = f; cout i % 2;",
	"int a, a; b = 1;",
	"int z; z = 0; cout 1 / z;",
	"// comment only\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seedPrograms {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
