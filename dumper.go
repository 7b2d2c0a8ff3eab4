// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package tribles

import (
	"fmt"
	"strings"
)

// Dump renders the node structure for diagnostics.
func (t *Tree[V]) Dump() string {
	var sb strings.Builder
	it := t.Nodes()
	for it.Next() {
		item := it.Item()
		indent := strings.Repeat("  ", item.Start)
		switch n := item.Node.(type) {
		case *LeafNode[V]:
			fmt.Fprintf(&sb, "%sleaf[%d] %x\n", indent, n.start, n.key)
		case *InfixNode[V]:
			fmt.Fprintf(&sb, "%sinfix[%d..%d] %x\n", indent, n.start, n.branchDepth, n.infix)
		case *BranchNode[V]:
			fmt.Fprintf(&sb, "%sbranch[%d] buckets=%d children=%d leaves=%d hash=%s\n",
				indent, n.branchDepth, len(n.buckets), n.childSet.Count(), n.leafCnt, n.hash)
		}
	}
	return sb.String()
}
