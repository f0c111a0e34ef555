package reader

import (
	"io"
	"io/ioutil"

	"github.com/ztrue/tracerr"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ReadSource returns the source text at path together with the name used for
// it in diagnostics.
func ReadSource(from string, stdin io.Reader) (string, string, error) {
	if from == Stdin {
		data, err := ioutil.ReadAll(stdin)
		if err != nil {
			return "", "", tracerr.Wrap(err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := ioutil.ReadFile(from)
	if err != nil {
		return "", "", tracerr.Wrap(err)
	}
	return string(data), from, nil
}
