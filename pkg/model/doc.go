// Package model describes the base objects manipulated by assetic.
//
// The object model for assetic is composed of:
//
//  Sources:
//    A source is the application or one of its plugins. Each source may
//    carry an assets manifest under its config directory.
//
//  Manifests:
//    A manifest (assets.xml) lists the assets a source publishes to the web root.
//
//  Assets:
//    A managed asset is a named file handed to the asset writer, which
//    writes it at its target path under the web root.
//
//  Static files:
//    A static file entry is a glob pattern whose matches (files or whole
//    directories) are copied into a destination directory under the web root.
package model
