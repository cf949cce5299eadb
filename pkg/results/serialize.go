package results

import (
	"fmt"

	"ResultAggregator/pkg/document"
)

// SnapshotSection is the document section all snapshot namespaces serialize
// under, keyed by record type.
const SnapshotSection = "snapshots"

// WriteTo contributes the container's content into doc without
// re-initializing it; sibling containers may write into the same document.
// A disabled container contributes nothing. Extras land at the top level,
// snapshots under the "snapshots" section keyed by record type.
//
// A record type present in both the average and pershot namespaces would
// make one fragment silently shadow the other, so it is rejected instead.
func (c *Container[T]) WriteTo(doc document.Document) error {
	if !c.enabled {
		return nil
	}

	for recordType := range c.averages {
		if _, ok := c.pershot[recordType]; ok {
			return fmt.Errorf("record type %q exists as both average and pershot snapshot", recordType)
		}
	}

	for k, v := range c.extras {
		doc.Set(k, v)
	}

	if len(c.averages) == 0 && len(c.pershot) == 0 {
		return nil
	}

	snaps := doc.Section(SnapshotSection)
	for recordType, snap := range c.averages {
		snaps.Set(recordType, snap.Fragment())
	}
	for recordType, snap := range c.pershot {
		snaps.Set(recordType, snap.Fragment())
	}
	return nil
}
