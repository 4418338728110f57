package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/no111u3/automatic/internal/domain"
)

// Load reads a YAML script file into a List.
func Load(path string) (domain.List, error) {
	if path == "" {
		return domain.List{}, &domain.ScriptError{Kind: domain.ErrScriptNotExist, Path: path, Err: os.ErrNotExist}
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.List{}, &domain.ScriptError{Kind: domain.ErrScriptNotExist, Path: path, Err: err}
		}
		return domain.List{}, &domain.ScriptError{Kind: domain.ErrScriptOpen, Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.List{}, &domain.ScriptError{Kind: domain.ErrScriptOpen, Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.List{}, &domain.ScriptError{Kind: domain.ErrScriptRead, Path: path, Err: err}
	}

	list, err := Parse(data)
	if err != nil {
		return domain.List{}, &domain.ScriptError{Kind: domain.ErrScriptParse, Path: path, Err: err}
	}
	return list, nil
}

// Parse decodes a single YAML document holding a tagged list.
func Parse(data []byte) (domain.List, error) {
	var list domain.List
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.List{}, errors.New("empty document")
		}
		return domain.List{}, err
	}
	return list, nil
}

// Save writes list to path as YAML, replacing any existing file.
func Save(path string, list domain.List) error {
	data, err := Marshal(list)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write script %s: %w", path, err)
	}
	return nil
}

func Marshal(list domain.List) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}
	return buf.Bytes(), nil
}

// Example returns the starter script written by "automatic init".
func Example(kind domain.ListKind) domain.List {
	return domain.NewList(kind,
		domain.NewRunItem("echo", "hello from automatic"),
		domain.NewRunItem("true"),
	)
}
