package stdlib

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/posidron/rusty/pkg/rusty"
)

// Every File native opens and closes what it touches before returning.
func fileNamespace() *rusty.NamespaceValue {
	return namespace("File", []rusty.NativeFunctionValue{
		rusty.Native("read", rusty.Exactly(1), doRead),
		rusty.Native("write", rusty.Exactly(2), doWrite),
		rusty.Native("append", rusty.Exactly(2), doAppend),
		rusty.Native("exists", rusty.Exactly(1), doExists),
		rusty.Native("delete", rusty.Exactly(1), doDelete),
	}, nil)
}

func doRead(args []rusty.Value) (rusty.Value, error) {
	path, err := str("read", args[0], "path")
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: failed to read file '%s': %w", path, err)
	}
	return rusty.StringValue(b), nil
}

func doWrite(args []rusty.Value) (rusty.Value, error) {
	path, content, err := pathAndContent("write", args)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write: failed to write to file '%s': %w", path, err)
	}
	return rusty.BoolValue(true), nil
}

func doAppend(args []rusty.Value) (rusty.Value, error) {
	path, content, err := pathAndContent("append", args)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("append: failed to append to file '%s': %w", path, err)
	}
	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("append: failed to append to file '%s': %w", path, err)
	}
	return rusty.BoolValue(true), nil
}

func doExists(args []rusty.Value) (rusty.Value, error) {
	path, err := str("exists", args[0], "path")
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(path)
	return rusty.BoolValue(err == nil), nil
}

// doDelete reports false when there was nothing to delete
func doDelete(args []rusty.Value) (rusty.Value, error) {
	path, err := str("delete", args[0], "path")
	if err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rusty.BoolValue(false), nil
		}
		return nil, fmt.Errorf("delete: failed to delete file '%s': %w", path, err)
	}
	return rusty.BoolValue(true), nil
}

func pathAndContent(fn string, args []rusty.Value) (string, string, error) {
	path, err := str(fn, args[0], "path")
	if err != nil {
		return "", "", err
	}
	content, err := str(fn, args[1], "content")
	if err != nil {
		return "", "", err
	}
	return path, content, nil
}
