// Package assets provides the C source templates for the generated page
// registry (webpages.h and webpages.c).
//
// Templates come from a Source. Builtin serves the embedded templates,
// which reproduce the legacy registry layout byte for byte. Dir serves
// replacements from a directory on disk. Chain asks its sources in order
// and moves to the next one only when a template is missing, so a project
// can override definitions.tmpl while keeping the built-in declarations:
//
//	{dir}/
//	├── declarations.tmpl    # rendered to webpages.h
//	└── definitions.tmpl     # rendered to webpages.c
//
// Only the names listed by TemplateNames are served. Dir resolves symlinks
// and refuses files that end up outside its directory.
package assets
