package prefabs

import (
	"os"
	"time"
)

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

func timeout() <-chan time.Time {
	return time.After(2 * time.Second)
}
