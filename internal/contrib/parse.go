package contrib

import (
	"strconv"
	"strings"
	"time"
)

// fileContribution is one author's share of a single file while it is
// being assembled from blame and log output.
type fileContribution struct {
	lines      []LineInfo
	historical int
	modified   string
	email      string
}

func contribution(m map[string]*fileContribution, author string) *fileContribution {
	c, ok := m[author]
	if !ok {
		c = &fileContribution{}
		m[author] = c
	}
	return c
}

// parseBlame extracts per-author surviving lines from
// blame --line-porcelain output. Blank lines carry no attribution.
func parseBlame(out []byte) map[string]*fileContribution {
	result := make(map[string]*fileContribution)

	var author, email, date string
	n := 0
	for _, line := range strings.Split(string(out), "\n") {
		switch {
		case strings.HasPrefix(line, "author "):
			author = line[len("author "):]
		case strings.HasPrefix(line, "author-mail "):
			email = strings.Trim(line[len("author-mail "):], "<>")
		case strings.HasPrefix(line, "author-time "):
			if secs, err := strconv.ParseInt(line[len("author-time "):], 10, 64); err == nil {
				date = time.Unix(secs, 0).Format("2006-01-02")
			}
		case strings.HasPrefix(line, "\t"):
			content := line[1:]
			if author == "" || content == "" {
				continue
			}
			n++
			c := contribution(result, author)
			c.lines = append(c.lines, LineInfo{Number: n, Content: content, Modified: date})
			c.modified = date
			c.email = email
		}
	}
	return result
}

// parseLog folds log --format=format:%aN%x00%aE --numstat output into
// historical line counts. Binary files report "-" and are skipped.
func parseLog(out []byte, result map[string]*fileContribution) {
	var author, email string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if name, mail, ok := strings.Cut(line, "\x00"); ok {
			author = name
			email = mail
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 || author == "" || fields[0] == "-" {
			continue
		}
		added, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		c := contribution(result, author)
		c.historical += added
		if email != "" {
			c.email = email
		}
	}
}
