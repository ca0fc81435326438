package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"difftest/internal/domain"
)

// PairingError reports a fixture directory that does not split into
// alternating before/after pairs. It is fatal for the whole run.
type PairingError struct {
	Dir    string
	First  string
	Second string
	Reason string
}

func (e *PairingError) Error() string {
	second := e.Second
	if second == "" {
		second = "<none>"
	}
	return fmt.Sprintf("found non-matching pair (%s, %s) in %s: %s", e.First, second, e.Dir, e.Reason)
}

// Scanner discovers before/after pairs in a fixture tree
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan walks root and returns every directory's validated test cases.
// The result depends only on the sorted file names under root.
func (s *Scanner) Scan(root string) (*domain.Inventory, error) {
	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("fixture path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixture path is not a directory: %s", root)
	}

	byDir := make(map[string][]string)
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := domain.RoleOf(d.Name()); !ok {
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}
		dir := filepath.Dir(path)
		byDir[dir] = append(byDir[dir], path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	inv := &domain.Inventory{Root: root}
	seen := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		cases, err := pairFiles(dir, byDir[dir])
		if err != nil {
			return nil, err
		}
		name := groupName(root, dir)
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("fixture directories %s and %s both map to group name %q", other, dir, name)
		}
		seen[name] = dir
		inv.Groups = append(inv.Groups, domain.TestGroup{
			Dir:   dir,
			Name:  name,
			Cases: cases,
		})
	}
	return inv, nil
}

// isRegularFile accepts regular files and symlinks that resolve to one
func isRegularFile(path string, d os.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// pairFiles sorts paths and splits them into consecutive (before, after) pairs
func pairFiles(dir string, paths []string) ([]domain.TestCase, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	cases := make([]domain.TestCase, 0, len(sorted)/2)
	for i := 0; i < len(sorted); i += 2 {
		first := sorted[i]
		if i+1 >= len(sorted) {
			return nil, &PairingError{Dir: dir, First: first, Reason: "odd number of sample files"}
		}
		second := sorted[i+1]

		firstRole, _ := domain.RoleOf(first)
		secondRole, _ := domain.RoleOf(second)
		if firstRole != domain.RoleBefore || secondRole != domain.RoleAfter {
			return nil, &PairingError{Dir: dir, First: first, Second: second, Reason: "expected a before file followed by an after file"}
		}

		stem := strings.TrimSuffix(filepath.Base(first), string(domain.BeforeMarker))
		if stem != strings.TrimSuffix(filepath.Base(second), string(domain.AfterMarker)) {
			return nil, &PairingError{Dir: dir, First: first, Second: second, Reason: "base names differ"}
		}

		cases = append(cases, domain.TestCase{
			Name:   caseName(stem),
			Before: domain.SampleFile{Path: first, Role: domain.RoleBefore},
			After:  domain.SampleFile{Path: second, Role: domain.RoleAfter},
		})
	}
	return cases, nil
}

// caseName drops the separator left behind by the marker: "foo." -> "foo"
func caseName(stem string) string {
	if stem == "" || stem == "." {
		return "_"
	}
	if name := strings.TrimSuffix(stem, "."); name != "" {
		return name
	}
	return stem
}

// groupName returns dir relative to root with separators flattened, e.g. "basic_nested"
func groupName(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		rel = filepath.Base(root)
	}
	return domain.SanitizeName(filepath.ToSlash(rel))
}
