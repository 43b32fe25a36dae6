package leaderboard

import (
	"errors"
	"io/fs"
)

// FakeRepository is a programmable FileRepository for failure paths
type FakeRepository struct {
	data   []byte
	exists bool

	ReadFunc   func() ([]byte, error)
	WriteFunc  func(data []byte) error
	RemoveFunc func() (bool, error)
}

var errDiskFull = errors.New("disk full")

func (f *FakeRepository) Path() string { return "fake.json" }

func (f *FakeRepository) Read() ([]byte, error) {
	if f.ReadFunc != nil {
		return f.ReadFunc()
	}
	if !f.exists {
		return nil, fs.ErrNotExist
	}
	return f.data, nil
}

func (f *FakeRepository) Write(data []byte) error {
	if f.WriteFunc != nil {
		return f.WriteFunc(data)
	}
	f.data = data
	f.exists = true
	return nil
}

func (f *FakeRepository) Remove() (bool, error) {
	if f.RemoveFunc != nil {
		return f.RemoveFunc()
	}
	existed := f.exists
	f.data, f.exists = nil, false
	return existed, nil
}

func (f *FakeRepository) Exists() (bool, error) { return f.exists, nil }
