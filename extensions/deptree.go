// Package extensions provides optional tooling on top of the tracked core:
// dependency tree drawing and a tracing inspector.
package extensions

import (
	"fmt"
	"sort"

	"github.com/m1gwings/treedrawer/tree"

	tracked "github.com/pumped-fn/tracked-go"
)

// DependencyTree draws the live subscription table of container: the
// container kind at the root and one leaf per subscribed key, labeled with
// its subscriber count. container may be a container or a view of it.
//
// Usage:
//
//	out, err := extensions.DependencyTree(realm, state)
//	if err == nil {
//	    fmt.Println(out)
//	}
func DependencyTree(realm *tracked.Realm, container any) (string, error) {
	if realm == nil {
		realm = tracked.Default()
	}
	deps, ok := realm.Dependencies(container)
	if !ok {
		return "", fmt.Errorf("extensions: value has no dependency table, wrap it first")
	}

	raw, isComposite := realm.Unwrap(container).(tracked.Composite)
	label := "container"
	if isComposite {
		label = string(raw.Kind())
	}

	t := tree.NewTree(tree.NodeString(label))
	for _, line := range keyLines(deps) {
		t.AddChild(tree.NodeString(line))
	}
	return t.String(), nil
}

// keyLines renders one "key (n)" line per subscribed key, sorted for stable
// output.
func keyLines(deps *tracked.KeyDeps) []string {
	keys := deps.Keys()
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s (%d)", keyString(key), len(deps.Subscribers(key))))
	}
	sort.Strings(lines)
	return lines
}

func keyString(key any) string {
	if key == tracked.IterateKey {
		return "<iterate>"
	}
	return fmt.Sprintf("%v", key)
}
