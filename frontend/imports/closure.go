package imports

import (
	"slices"

	"github.com/anpylar/anpylar/vfs"
)

// Closure returns the names of lib reachable from seeds by following
// imports. A name joins the result before its own imports are expanded,
// which keeps import cycles finite. Non-Python entries are leaves.
func Closure(lib *vfs.Manifest, seeds []string) (map[string]struct{}, error) {
	reached := make(map[string]struct{})
	work := slices.Clone(seeds)
	slices.Reverse(work) // pop in seed order

	for len(work) > 0 {
		name := work[len(work)-1]
		work = work[:len(work)-1]

		if _, ok := reached[name]; ok {
			continue
		}
		e, ok := lib.Get(name)
		if !ok {
			continue
		}
		reached[name] = struct{}{}
		if !e.IsSource() {
			continue
		}

		f := NewFinder()
		f.SetPackage(PackageContext(name, e))
		if err := f.Scan(SourceFile(name, e), e.Content); err != nil {
			return nil, err
		}
		for _, imp := range f.Imports() {
			if _, ok := reached[imp]; !ok && lib.Has(imp) {
				work = append(work, imp)
			}
		}
	}
	return reached, nil
}
