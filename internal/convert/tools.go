package convert

import (
	"os"
	"path/filepath"
	"runtime"
)

// Format is the artifact type a conversion produces.
type Format string

const (
	PDF  Format = "pdf"
	HTML Format = "html"
)

// Job describes one conversion. Tools write into Out (a file inside the
// private WorkDir) or into WorkDir under the source's base name; anything
// else is found by relocation.
type Job struct {
	Source  string
	Out     string
	WorkDir string
	Format  Format
}

// Tool is an external converter.
type Tool struct {
	Name string
	// Candidates are tried in order: bare names via PATH, absolute paths
	// via stat.
	Candidates []string
	// Args builds the argument list per format. A missing format means the
	// tool cannot produce it.
	Args map[Format]func(Job) []string
	// TextOnly tools are detected but can only extract text.
	TextOnly bool
}

// DefaultTools is the built-in priority order: fast command line tools
// first, office suites after, text extraction last.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:       "unoconv",
			Candidates: []string{"unoconv"},
			Args: map[Format]func(Job) []string{
				PDF:  func(j Job) []string { return []string{"-f", "pdf", "-o", j.Out, j.Source} },
				HTML: func(j Job) []string { return []string{"-f", "html", "-o", j.Out, j.Source} },
			},
		},
		{
			Name:       "libreoffice",
			Candidates: libreOfficeCandidates(),
			Args: map[Format]func(Job) []string{
				PDF:  func(j Job) []string { return sofficeArgs(j, "pdf") },
				HTML: func(j Job) []string { return sofficeArgs(j, "html") },
			},
		},
		{
			Name: "wps",
			Candidates: []string{
				"wps",
				"/opt/apps/cn.wps.wps-office/files/bin/wps",
				"/opt/kingsoft/wps-office/office6/wps",
			},
			Args: map[Format]func(Job) []string{
				PDF: func(j Job) []string { return []string{"--export-pdf", j.Source, j.Out} },
			},
		},
		{
			Name:       "pandoc",
			Candidates: []string{"pandoc"},
			Args: map[Format]func(Job) []string{
				PDF:  func(j Job) []string { return []string{j.Source, "-o", j.Out} },
				HTML: func(j Job) []string { return []string{"-s", j.Source, "-o", j.Out} },
			},
		},
		{
			Name:       "onlyoffice",
			Candidates: []string{"onlyoffice-desktopeditors", "desktopeditors"},
			Args: map[Format]func(Job) []string{
				PDF: func(j Job) []string { return []string{"--convert-to", "pdf", "--output", j.Out, j.Source} },
			},
		},
		{
			Name:       "docx2txt",
			Candidates: []string{"docx2txt"},
			TextOnly:   true,
		},
	}
}

func libreOfficeCandidates() []string {
	c := []string{
		"libreoffice",
		"soffice",
		"/usr/bin/libreoffice",
		"/usr/bin/soffice",
		"/opt/libreoffice/program/soffice",
		"/snap/bin/libreoffice",
	}
	switch runtime.GOOS {
	case "darwin":
		c = append(c, "/Applications/LibreOffice.app/Contents/MacOS/soffice")
	case "windows":
		c = append(c, `C:\Program Files\LibreOffice\program\soffice.exe`)
	}
	return c
}

// sofficeArgs runs LibreOffice with a profile under the job's work dir so a
// running desktop instance does not swallow the request.
func sofficeArgs(j Job, format string) []string {
	profile := "file://" + filepath.ToSlash(filepath.Join(j.WorkDir, "profile"))
	if runtime.GOOS == "windows" {
		profile = "file:///" + filepath.ToSlash(filepath.Join(j.WorkDir, "profile"))
	}
	return []string{
		"-env:UserInstallation=" + profile,
		"--headless",
		"--convert-to", format,
		"--outdir", j.WorkDir,
		j.Source,
	}
}

// detected is a tool resolved to an executable path.
type detected struct {
	Tool
	Path string
}

// filterTools restricts tools to names, in the order given. Unknown names
// are ignored; an empty list keeps everything.
func filterTools(tools []Tool, names []string) []Tool {
	if len(names) == 0 {
		return tools
	}
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}
	out := make([]Tool, 0, len(names))
	for _, n := range names {
		if t, ok := byName[n]; ok {
			out = append(out, t)
		}
	}
	return out
}

// detect returns the first tool, in priority order, that is installed and
// either supports format or is a text-only fallback.
func (c *Cache) detect(format Format) (detected, bool) {
	for _, t := range c.tools {
		if _, ok := t.Args[format]; !ok && !t.TextOnly {
			continue
		}
		for _, cand := range t.Candidates {
			if p, ok := c.resolve(cand); ok {
				return detected{Tool: t, Path: p}, true
			}
		}
	}
	return detected{}, false
}

func (c *Cache) resolve(candidate string) (string, bool) {
	if filepath.IsAbs(candidate) {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			return "", false
		}
		if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
			return "", false
		}
		return candidate, true
	}
	p, err := c.lookPath(candidate)
	if err != nil {
		return "", false
	}
	return p, true
}

// Available lists the names of installed converters in priority order.
func (c *Cache) Available() []string {
	var names []string
	for _, t := range c.tools {
		for _, cand := range t.Candidates {
			if _, ok := c.resolve(cand); ok {
				names = append(names, t.Name)
				break
			}
		}
	}
	return names
}
