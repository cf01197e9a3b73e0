package phrases

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/klemjul/nodepulse/internal/config"
)

// Load returns the trimmed non-blank lines of path, in file order.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: missing data file: %s", config.ErrConfiguration, path)
		}
		return nil, fmt.Errorf("%w: error loading %s: %v", config.ErrConfiguration, path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error loading %s: %v", config.ErrConfiguration, path, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty file: %s", config.ErrConfiguration, path)
	}
	return lines, nil
}
