package cmd

import "strings"

// multiValueFlags accept several values after a single flag, as in
// "-i '*.py' '*.txt' -e 'test_*'"
var multiValueFlags = map[string]bool{
	"-i":        true,
	"--include": true,
	"-e":        true,
	"--exclude": true,
}

// normalizeArgs rewrites "-i a b c" into "-i a -i b -i c" so that cobra sees
// one value per flag. Values run until the next argument starting with "-".
// A multi-value flag with no values is dropped. Nothing after "--" is touched.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if !multiValueFlags[arg] {
			out = append(out, arg)
			continue
		}

		for i+1 < len(args) && !isFlag(args[i+1]) {
			i++
			out = append(out, arg, args[i])
		}
	}
	return out
}

func isFlag(arg string) bool {
	return strings.HasPrefix(arg, "-") && arg != "-"
}
