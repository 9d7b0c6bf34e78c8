package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/djherbis/atime"
	humanize "github.com/dustin/go-humanize"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/svgmin/svg"
)

// Version is the current svgmin version.
var Version = "built from source"

var (
	hidden             bool
	m                  *svg.Minifier
	matches            []string
	matchesRegexp      []*regexp.Regexp
	filters            []string
	filtersRegexp      []*regexp.Regexp
	recursive          bool
	sniff              bool
	quiet              bool
	verbose            int
	version            bool
	watch              bool
	syncFiles          bool
	preserve           []string
	preserveMode       bool
	preserveOwnership  bool
	preserveTimestamps bool
	preserveLinks      bool
)

type Matches struct {
	matches *[]string
}

func (scanner Matches) Scan(s []string) (int, error) {
	n := 0
	for _, item := range s {
		if strings.HasPrefix(item, "-") {
			break
		}
		*scanner.matches = append(*scanner.matches, item)
		n++
	}
	return n, nil
}

func (typenamer Matches) TypeName() string {
	return "[]string"
}

type Includes struct {
	filters *[]string
}

func (scanner Includes) Scan(s []string) (int, error) {
	n := 0
	for _, item := range s {
		if strings.HasPrefix(item, "-") {
			break
		}
		*scanner.filters = append(*scanner.filters, "+"+item)
		n++
	}
	return n, nil
}

func (typenamer Includes) TypeName() string {
	return "[]string"
}

type Excludes struct {
	filters *[]string
}

func (scanner Excludes) Scan(s []string) (int, error) {
	n := 0
	for _, item := range s {
		if strings.HasPrefix(item, "-") {
			break
		}
		*scanner.filters = append(*scanner.filters, "-"+item)
		n++
	}
	return n, nil
}

func (typenamer Excludes) TypeName() string {
	return "[]string"
}

// keepFlags disable a pass when set, they override the configuration file.
var keepFlags = []struct {
	name   string
	desc   string
	option func(*svg.Options) *bool
}{
	{"keep-comments", "Preserve all comments", func(o *svg.Options) *bool { return &o.RemoveComments }},
	{"keep-metadata", "Preserve metadata, title and desc elements", func(o *svg.Options) *bool { return &o.RemoveMetadata }},
	{"keep-editor-data", "Preserve editor namespaces and their elements and attributes", func(o *svg.Options) *bool { return &o.RemoveEditorNamespaces }},
	{"keep-groups", "Preserve groups that could be collapsed", func(o *svg.Options) *bool { return &o.CollapseGroups }},
	{"keep-hidden", "Preserve hidden and empty elements", func(o *svg.Options) *bool { return &o.RemoveHiddenEmpty }},
	{"keep-paths", "Preserve path data and point lists", func(o *svg.Options) *bool { return &o.MinifyPaths }},
	{"keep-colors", "Preserve color values", func(o *svg.Options) *bool { return &o.MinifyColors }},
	{"keep-styles", "Preserve style attributes and style sheets", func(o *svg.Options) *bool { return &o.MinifyStyles }},
	{"keep-default-attrs", "Preserve attributes set to their default value", func(o *svg.Options) *bool { return &o.RemoveDefaultAttrs }},
	{"keep-attr-order", "Preserve the order of attributes", func(o *svg.Options) *bool { return &o.SortAttrs }},
	{"keep-whitespace", "Preserve whitespace characters", func(o *svg.Options) *bool { return &o.CollapseWhitespace }},
	{"keep-numbers", "Preserve numbers, lengths and transforms in attributes", func(o *svg.Options) *bool { return &o.MinifyNumbers }},
	{"keep-data-uris", "Preserve embedded SVG data URIs", func(o *svg.Options) *bool { return &o.MinifyDataURIs }},
}

// Task is a minify task.
type Task struct {
	root string
	src  string
	dst  string
	sync bool
}

// NewTask returns a new Task.
func NewTask(root, input, output string, sync bool) (Task, error) {
	if len(output) != 0 && (output == "." || output[len(output)-1] == os.PathSeparator) {
		rel, err := filepath.Rel(root, input)
		if err != nil {
			return Task{}, err
		}
		output = filepath.Join(output, rel)
	}
	return Task{root, input, output, sync}, nil
}

// Loggers.
var (
	Error   *log.Logger
	Warning *log.Logger
	Info    *log.Logger
)

func main() {
	// os.Exit doesn't execute pending defer calls, this is fixed by encapsulating run()
	os.Exit(run())
}

func run() int {
	var inputs []string
	var output string
	var config string
	var precision int
	var strictPathData, keepUnknownEntities bool
	keeps := make([]bool, len(keepFlags))

	defaultPreserve := []string{"mode", "timestamps"}
	if supportsGetOwnership {
		defaultPreserve = []string{"mode", "ownership", "timestamps"}
	}

	f := argp.New("svgmin")
	f.AddRest(&inputs, "inputs", "Input files or directories, leave blank to use stdin")
	f.AddOpt(&output, "o", "output", nil, "Output file or directory, leave blank to use stdout")
	f.AddOpt(&config, "c", "config", nil, "Configuration file with minifier options (.toml, .yaml or .yml)")
	f.AddOpt(Matches{&matches}, "", "match", nil, "Filename matching pattern, only matching filenames are processed")
	f.AddOpt(Includes{&filters}, "", "include", nil, "Path inclusion pattern, includes paths previously excluded")
	f.AddOpt(Excludes{&filters}, "", "exclude", nil, "Path exclusion pattern, excludes paths from being processed")
	f.AddOpt(&recursive, "r", "recursive", false, "Recursively minify directories")
	f.AddOpt(&sniff, "", "sniff", false, "Detect SVG files by content when their extension is not .svg")
	f.AddOpt(&hidden, "a", "all", false, "Minify all files, including hidden files and files in hidden directories")
	f.AddOpt(&quiet, "q", "quiet", false, "Quiet mode to suppress all output")
	f.AddOpt(argp.Count{I: &verbose}, "v", "verbose", nil, "Verbose mode, set twice for more verbosity")
	f.AddOpt(&watch, "w", "watch", false, "Watch files and minify upon changes")
	f.AddOpt(&syncFiles, "s", "sync", false, "Copy all files to destination directory and minify when the file is an SVG")
	f.AddOpt(&preserve, "p", "preserve", defaultPreserve, "Preserve options (mode, ownership, timestamps, links, all)")
	f.AddOpt(&version, "", "version", false, "Version")

	f.AddOpt(&precision, "", "precision", svg.DefaultOptions.Precision, "Number of decimals to preserve in coordinates and lengths, -1 is all")
	for i, flag := range keepFlags {
		f.AddOpt(&keeps[i], "", flag.name, false, flag.desc)
	}
	f.AddOpt(&strictPathData, "", "strict-path-data", false, "Fail on invalid path data instead of leaving it untouched")
	f.AddOpt(&keepUnknownEntities, "", "keep-unknown-entities", false, "Pass undeclared entity references through instead of failing")
	f.Parse()

	if version {
		if !quiet {
			fmt.Printf("svgmin %s\n", Version)
		}
		return 0
	}

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0] // stdin
	} else if output == "-" {
		output = "" // stdout
	}
	useStdin := len(inputs) == 0

	Error, Warning, Info = newLoggers(os.Stderr, quiet, verbose)

	options := svg.DefaultOptions
	if config != "" {
		if err := loadConfig(config, &options); err != nil {
			Error.Println(err)
			return 1
		}
		Info.Println("use configuration file", config)
	}
	if f.IsSet("precision") {
		options.Precision = precision
	}
	for i, flag := range keepFlags {
		if f.IsSet(flag.name) {
			*flag.option(&options) = !keeps[i]
		}
	}
	if f.IsSet("strict-path-data") {
		options.StrictPathData = strictPathData
	}
	if f.IsSet("keep-unknown-entities") {
		options.KeepUnknownEntities = keepUnknownEntities
	}
	m = &svg.Minifier{Options: options}

	// compile matches and regexps
	var err error
	if 0 < len(matches) {
		matchesRegexp = make([]*regexp.Regexp, len(matches))
		for i, pattern := range matches {
			if matchesRegexp[i], err = compilePattern(pattern); err != nil {
				Error.Println(err)
				return 1
			}
		}
	}
	if 0 < len(filters) {
		filtersRegexp = make([]*regexp.Regexp, len(filters))
		for i, pattern := range filters {
			if filtersRegexp[i], err = compilePattern(pattern[1:]); err != nil {
				Error.Println(err)
				return 1
			}
		}
	}

	if (useStdin || output == "") && (watch || syncFiles) {
		if watch {
			Error.Println("--watch doesn't work with stdin and stdout, specify input and output")
		}
		if syncFiles {
			Error.Println("--sync doesn't work with stdin and stdout, specify input and output")
		}
		return 1
	} else if useStdin && recursive {
		Error.Println("--recursive doesn't work with stdin, specify input")
		return 1
	} else if output == "" && recursive {
		Error.Println("--recursive doesn't work with stdout, specify output")
		return 1
	}
	if f.IsSet("preserve") && (useStdin || output == "") {
		Error.Println("--preserve cannot be used together with stdin or stdout")
		return 1
	}
	for _, option := range preserve {
		switch option {
		case "all":
			preserveMode = true
			preserveOwnership = true
			preserveTimestamps = true
			preserveLinks = true
		case "mode":
			preserveMode = true
		case "ownership":
			preserveOwnership = true
		case "timestamps":
			preserveTimestamps = true
		case "links":
			preserveLinks = true
		}
	}
	if preserveOwnership && !supportsGetOwnership {
		Warning.Println(fmt.Errorf("preserve ownership not supported on platform"))
	}

	////////////////

	for i, input := range inputs {
		if input == "-" {
			Error.Println("cannot mix files and stdin as input")
			return 1
		}
		inputs[i] = filepath.Clean(input)
		if input[len(input)-1] == os.PathSeparator {
			inputs[i] += string(os.PathSeparator)
		}
	}

	// set output file or directory, empty means stdout
	dirDst := false
	if output != "" {
		dirDst = isDir(output)
		if !dirDst {
			if 1 < len(inputs) {
				Error.Printf("stat %v: no such file or directory\n", output)
				return 1
			} else if len(inputs) == 1 {
				if info, err := os.Lstat(inputs[0]); err == nil && info.Mode().IsDir() && info.Mode()&os.ModeSymlink == 0 {
					dirDst = true
				}
			}
		}

		output = filepath.Clean(output)
		if dirDst {
			output += string(os.PathSeparator)
		}
	} else if 1 < len(inputs) {
		Error.Println("must specify an output directory for multiple input files")
		return 1
	}
	if output == "" {
		Info.Println("minify to stdout")
	} else if !dirDst {
		Info.Println("minify to output file", output)
	} else if output == "."+string(os.PathSeparator) {
		Info.Println("minify to current working directory")
	} else {
		Info.Println("minify to output directory", output)
	}
	if useStdin {
		Info.Println("minify from stdin")
	}

	fsys := NewFS()
	var tasks []Task
	var roots []string
	if useStdin {
		task, err := NewTask("", "", output, false)
		if err != nil {
			Error.Println(err)
			return 1
		}
		tasks = append(tasks, task)
		roots = append(roots, "")
	} else {
		tasks, roots, err = createTasks(fsys, inputs, output)
		if err != nil {
			Error.Println(err)
			return 1
		}
	}

	// make output directory
	if dirDst {
		if err := os.MkdirAll(output, 0777); err != nil {
			Error.Println(err)
			return 1
		}
	}

	////////////////

	fails := 0
	start := time.Now()
	if !watch && (len(tasks) == 1 || 0 < verbose) {
		for _, task := range tasks {
			if ok := minify(task); !ok {
				fails++
			}
		}
	} else {
		numWorkers := runtime.NumCPU()
		if 0 < verbose {
			numWorkers = 1
		} else if numWorkers < 4 {
			numWorkers = 4
		}

		chanTasks := make(chan Task, 20)
		chanFails := make(chan int, numWorkers)
		for n := 0; n < numWorkers; n++ {
			go minifyWorker(chanTasks, chanFails)
		}

		if !watch {
			for _, task := range tasks {
				chanTasks <- task
			}
		} else {
			watcher, err := NewWatcher(recursive)
			if err != nil {
				Error.Println(err)
				return 1
			}
			defer watcher.Close()
			changes := watcher.Run()

			for _, filename := range inputs {
				if err := watcher.AddPath(filename); err != nil {
					Error.Println(err)
					return 1
				}
			}

			for _, task := range tasks {
				watcher.IgnoreNext(task.dst)
				chanTasks <- task
			}

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)
			for changes != nil {
				select {
				case <-c:
					watcher.Close()
				case file, ok := <-changes:
					if !ok {
						changes = nil
						break
					}
					file = filepath.Clean(file)

					// find longest common path among roots
					root := ""
					for _, path := range roots {
						pathRel, err1 := filepath.Rel(path, file)
						rootRel, err2 := filepath.Rel(root, file)
						if err2 != nil || err1 == nil && len(pathRel) < len(rootRel) {
							root = path
						}
					}

					task, err := NewTask(root, file, output, !fileMatches(fsys, file))
					if err != nil {
						Error.Println(err)
						return 1
					}
					watcher.IgnoreNext(task.dst) // skip change on output
					chanTasks <- task
				}
			}
		}

		close(chanTasks)
		for n := 0; n < numWorkers; n++ {
			fails += <-chanFails
		}
	}

	if !watch {
		Info.Println("finished in", time.Since(start))
	}
	if 0 < fails {
		return 1
	}
	return 0
}

func minifyWorker(chanTasks <-chan Task, chanFails chan<- int) {
	fails := 0
	for task := range chanTasks {
		if ok := minify(task); !ok {
			fails++
		}
	}
	chanFails <- fails
}

// compilePattern returns *regexp.Regexp or glob.Glob
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if len(pattern) == 0 || pattern[0] != '~' {
		if strings.HasPrefix(pattern, `\~`) {
			pattern = pattern[1:]
		}
		pattern = regexp.QuoteMeta(pattern)
		pattern = strings.ReplaceAll(pattern, `\*\*`, `.*`)
		pattern = strings.ReplaceAll(pattern, `\*`, fmt.Sprintf(`[^%c]*`, filepath.Separator))
		pattern = strings.ReplaceAll(pattern, `\?`, fmt.Sprintf(`[^%c]?`, filepath.Separator))
		pattern = "^" + pattern + "$"
	} else {
		pattern = pattern[1:]
	}
	return regexp.Compile(pattern)
}

func fileFilter(filename string) bool {
	if 0 < len(matches) {
		match := false
		base := filepath.Base(filename)
		for _, re := range matchesRegexp {
			if re.MatchString(base) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	match := true
	for i, re := range filtersRegexp {
		if re.MatchString(filename) {
			match = filters[i][0] == '+'
		}
	}
	return match
}

// fileMatches returns true for SVG files that pass the filters, by extension or by content when sniffing.
func fileMatches(fsys fs.FS, filename string) bool {
	if !fileFilter(filename) {
		return false
	} else if strings.EqualFold(filepath.Ext(filename), ".svg") {
		return true
	}
	return sniff && sniffSVG(fsys, filename)
}

func createTasks(fsys fs.FS, inputs []string, output string) ([]Task, []string, error) {
	tasks := []Task{}
	roots := []string{}
	for _, input := range inputs {
		root := filepath.Clean(filepath.Dir(input))
		input = filepath.Clean(input)

		var err error
		var info os.FileInfo
		if !preserveLinks {
			// follow and dereference symlinks
			info, err = fs.Stat(fsys, input)
		} else {
			info, err = os.Lstat(input)
		}
		if err != nil {
			return nil, nil, err
		}

		if preserveLinks && info.Mode()&os.ModeSymlink != 0 {
			// copy symlink as is
			if !syncFiles {
				Warning.Println("--sync not specified, omitting symbolic link", input)
				continue
			}
			task, err := NewTask(root, input, output, true)
			if err != nil {
				return nil, nil, err
			}
			tasks = append(tasks, task)
		} else if info.Mode().IsRegular() {
			valid := fileFilter(input) // explicit inputs are minified whatever their extension
			if valid || syncFiles {
				task, err := NewTask(root, input, output, !valid)
				if err != nil {
					return nil, nil, err
				}
				tasks = append(tasks, task)
			}
		} else if info.Mode().IsDir() {
			if !recursive {
				Warning.Println("--recursive not specified, omitting directory", input)
				continue
			}

			var walkFn func(string, fs.DirEntry, error) error
			walkFn = func(input string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				} else if d.Name() == "." || d.Name() == ".." {
					return nil
				} else if d.Name() == "" || !hidden && d.Name()[0] == '.' {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}

				if !preserveLinks && d.Type()&os.ModeSymlink != 0 {
					// follow and dereference symlinks
					info, err := fs.Stat(fsys, input)
					if err != nil {
						return err
					}
					if info.IsDir() {
						return fs.WalkDir(fsys, input, walkFn)
					}
					d = fs.FileInfoToDirEntry(info)
				}

				if preserveLinks && d.Type()&os.ModeSymlink != 0 {
					// copy symlink as is
					if !syncFiles {
						Warning.Println("--sync not specified, omitting symbolic link", input)
						return nil
					}
					task, err := NewTask(root, input, output, true)
					if err != nil {
						return err
					}
					tasks = append(tasks, task)
				} else if d.Type().IsRegular() {
					valid := fileMatches(fsys, input)
					if valid || syncFiles {
						task, err := NewTask(root, input, output, !valid)
						if err != nil {
							return err
						}
						tasks = append(tasks, task)
					}
				}
				return nil
			}
			if err := fs.WalkDir(fsys, input, walkFn); err != nil {
				return nil, nil, err
			}
			roots = append(roots, root)
		} else {
			return nil, nil, fmt.Errorf("not a file or directory %s", input)
		}
	}
	return tasks, roots, nil
}

func minify(t Task) bool {
	// synchronizing files that are not minified but just copied to the same directory, no action needed
	if t.sync {
		if t.src == t.dst {
			return true
		} else if info, err := os.Lstat(t.src); preserveLinks && err == nil && info.Mode()&os.ModeSymlink != 0 {
			src, err := os.Readlink(t.src)
			if err != nil {
				Error.Println(err)
				return false
			}
			if err := createSymlink(src, t.dst); err != nil {
				Error.Println(err)
				return false
			}
			return true
		}
	}

	srcName := t.src
	if srcName == "" {
		srcName = "stdin"
	}
	dstName := t.dst
	bak := ""
	if dstName == "" {
		dstName = "stdout"
	} else if sameFile(t.src, t.dst) {
		// rename original when overwriting
		var err error
		if bak, err = backup(t.dst); err != nil {
			Error.Println(err)
			return false
		}
		t.src = bak
	}

	b, err := readDocument(t.src)
	if err != nil {
		Error.Println(err)
		return false
	}

	success := true
	out := b
	startTime := time.Now()
	if !t.sync {
		w := bytes.NewBuffer(make([]byte, 0, len(b)))
		if err := m.Minify(w, bytes.NewReader(b)); err != nil {
			Error.Println("cannot minify "+srcName+":", err)
			success = false
		} else {
			out = w.Bytes()
		}
	}
	dur := time.Since(startTime)

	err = writeDocument(t.dst, out)
	if err != nil {
		Error.Println(err)
		success = false
	}
	if t.sync {
		Info.Println("copy", srcName, "to", dstName)
	} else if !quiet {
		fmt.Println(stats(dur, len(b), len(out)), "-", describe(srcName, dstName))
	}

	// remove original that was renamed, when overwriting files
	if bak != "" {
		t.src = t.dst
		if err == nil {
			err = os.Remove(bak)
		} else {
			err = restore(bak, t.dst)
		}
		if err != nil {
			Error.Println(err)
			return false
		}
	}
	if err != nil {
		return false
	}
	preserveAttributes(t.src, t.root, t.dst)
	return success
}

// stats formats the duration, input and output sizes, compression ratio and speed of a minification.
func stats(dur time.Duration, rLen, wLen int) string {
	speed := "Inf MB"
	if 0 < dur {
		speed = humanize.Bytes(uint64(float64(rLen) / dur.Seconds()))
	}
	ratio := 1.0
	if 0 < rLen {
		ratio = float64(wLen) / float64(rLen)
	}
	return fmt.Sprintf("(%9v, %6v, %6v, %5.1f%%, %6v/s)", dur, humanize.Bytes(uint64(rLen)), humanize.Bytes(uint64(wLen)), ratio*100, speed)
}

func describe(srcName, dstName string) string {
	if srcName != dstName {
		return srcName + " to " + dstName
	}
	return srcName
}

func preserveAttributes(src, root, dst string) {
	if src == "" || dst == "" {
		return
	}

	// make sure we only set attributes on directories and files inside the root destination
	var err error
	src, err = filepath.Rel(root, src)
	if err != nil {
		// should never occur
		Error.Printf("src is not part of root path: src=%s root=%s", src, root)
		return
	}

Next:
	srcInfo, err := os.Stat(filepath.Join(root, src))
	if err != nil {
		Warning.Println(err)
		return
	}

	if preserveMode {
		err = os.Chmod(dst, srcInfo.Mode().Perm())
		if err != nil {
			Warning.Println(err)
		}
	}
	if preserveOwnership {
		if uid, gid, ok := getOwnership(srcInfo); ok {
			err = os.Chown(dst, uid, gid)
			if err != nil {
				Warning.Println(err)
			}
		}
	}
	if preserveTimestamps {
		err = os.Chtimes(dst, atime.Get(srcInfo), srcInfo.ModTime())
		if err != nil {
			Warning.Println(err)
		}
	}

	src = filepath.Dir(src)
	dst = filepath.Dir(dst)
	if src != "." {
		// go up to but excluding the root path
		goto Next
	}
}
