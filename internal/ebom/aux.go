package ebom

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// costTableLabel is the prefix of the cost table labels in the LaTeX .aux
// file, e.g. \newlabel{ct:BR-00001-AA}{{1.2}{14}...}.
const costTableLabel = `\newlabel{ct:`

var pageNumber = regexp.MustCompile(`\{(\d+)\}`)

// ReadPageRefs reads the page of every cost table from a LaTeX .aux file.
// A missing file yields an empty map; the first label of a part number wins.
func ReadPageRefs(path string) (map[string]int, error) {
	pages := make(map[string]int)

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return pages, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, costTableLabel) {
			continue
		}

		pn, rest, ok := strings.Cut(line[len(costTableLabel):], "}")
		if !ok {
			continue
		}
		match := pageNumber.FindStringSubmatch(rest)
		if match == nil {
			continue
		}
		page, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		if _, seen := pages[pn]; !seen {
			pages[pn] = page
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return pages, nil
}
