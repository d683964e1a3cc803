package surfaceparse

import "github.com/zgunz42/deepkit-framework/internal/extract"

// ToUnit adapts a parsed File into the resolver's view of a compilation
// unit: its own declarations indexed by name, its imports, and its
// re-export statements. Declarations without type-bearing content (a
// function or class the parser recovered only partially) still get an
// entry, since the resolver looks things up by name regardless of export
// status.
func (f *File) ToUnit() *extract.Unit {
	u := extract.NewUnit(f.Path)

	for _, c := range f.Classes {
		u.Declared[c.Name] = c
	}
	for _, i := range f.Interfaces {
		u.Declared[i.Name] = i
	}
	for _, fn := range f.Functions {
		u.Declared[fn.Name] = fn
	}
	for _, ta := range f.TypeAliases {
		u.Declared[ta.Name] = ta
	}

	for _, imp := range f.Imports {
		for _, spec := range imp.Specifiers {
			u.Imports[spec.Local] = extract.ImportRef{Module: imp.Module, ImportedName: spec.Imported}
		}
	}

	for _, re := range f.ReExports {
		for _, spec := range re.Specifiers {
			as := spec.As
			if as == "" {
				as = spec.Exported
			}
			u.ReExports = append(u.ReExports, extract.ReExport{Name: spec.Exported, As: as, From: re.Module})
		}
	}
	u.ReExportStars = append(u.ReExportStars, f.ReExportStars...)

	return u
}
