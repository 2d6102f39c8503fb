package hederalegacy

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Paths tried, in order, when the artifact is a compiler/hardhat JSON file.
var bytecodeJsonPaths = []string{
	"data.bytecode.object",
	"bytecode.object",
	"bytecode",
	"object",
}

// LoadBytecode reads contract bytecode from a .bin file (hex text) or a JSON
// build artifact. The result is the hex text itself, which is what the
// contract create flow uploads.
func LoadBytecode(path string) (bytecode []byte, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "unable to read bytecode file: %s", path)
		return
	}

	var raw string
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err = bytecodeFromJson(data)
		if err != nil {
			err = errors.Wrapf(err, "artifact %s", path)
			return
		}
	} else {
		raw = string(data)
	}

	return ParseBytecode(raw)
}

func bytecodeFromJson(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", errors.Wrap(ErrInvalidArtifact, "malformed json")
	}

	for _, path := range bytecodeJsonPaths {
		if v := gjson.GetBytes(data, path); v.Exists() && v.Type == gjson.String {
			return v.String(), nil
		}
	}

	return "", errors.Wrap(ErrInvalidArtifact, "no bytecode field found")
}

func ParseBytecode(raw string) ([]byte, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if raw == "" {
		return nil, errors.Wrap(ErrInvalidArtifact, "empty bytecode")
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return nil, errors.Wrapf(ErrInvalidArtifact, "bytecode is not hex: %v", err)
	}
	return []byte(raw), nil
}
