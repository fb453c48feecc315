package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Store-specific helpers

func Component(name string) Field {
	return String("component", name)
}

func Store(name string) Field {
	return String("store", name)
}

func Path(p string) Field {
	return String("path", p)
}

func Records(n int) Field {
	return Int("records", n)
}

func RecordSize(n int) Field {
	return Int("record_size", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func RunID(id string) Field {
	return String("run_id", id)
}
