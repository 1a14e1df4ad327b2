/*
Package assetic provides CLI tooling to publish web assets at deployment time.

An application and each of its plugins may declare, in a config/assets.xml
manifest, the assets to publish in the public web root: managed assets,
written one by one to a target path, and static files, copied from glob
patterns. Paths in manifests may refer to the bower and npm asset
directories through placeholders.
*/
package assetic
