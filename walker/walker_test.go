package walker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erraggy/jfather/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squad() *document.Node {
	return document.Object(
		document.F("squadName", document.String("Super hero squad")),
		document.F("members", document.Array(
			document.Object(document.F("name", document.String("Molecule Man"))),
			document.Object(document.F("name", document.String("Madame Uppercut"))),
		)),
		document.F("base", document.Object(
			document.F("city", document.String("Metro City")),
		)),
		document.F("active", document.Bool(true)),
	)
}

// markVisited marks an object as visited.
func markVisited(n *document.Node) *document.Node {
	return document.Object(append(n.Fields(), document.F("visited", document.Bool(true)))...)
}

func TestWalk_Scalars(t *testing.T) {
	calls := 0
	fn := func(n *document.Node) *document.Node {
		calls++
		return n
	}

	assert.Nil(t, Walk(nil, fn))
	assert.Equal(t, `"x"`, Walk(document.String("x"), fn).String())
	assert.Equal(t, `null`, Walk(document.Null(), fn).String())
	assert.Equal(t, 0, calls)
}

func TestWalk_VisitsObjectsBottomUp(t *testing.T) {
	var order []string
	fn := func(n *document.Node) *document.Node {
		order = append(order, n.String())
		return n
	}

	doc := document.Object(
		document.F("a", document.Object(document.F("b", document.Int(1)))),
		document.F("c", document.Array(document.Object())),
	)
	Walk(doc, fn)

	assert.Equal(t, []string{
		`{"b":1}`,
		`{}`,
		`{"a":{"b":1},"c":[{}]}`,
	}, order)
}

func TestWalk_AppliesFunctionToObjectsOnly(t *testing.T) {
	out := Walk(squad(), markVisited)

	assert.Equal(t,
		`{"squadName":"Super hero squad","members":[{"name":"Molecule Man","visited":true},{"name":"Madame Uppercut","visited":true}],"base":{"city":"Metro City","visited":true},"active":true,"visited":true}`,
		out.String())
}

func TestWalk_DoesNotMutateInput(t *testing.T) {
	doc := squad()
	snapshot := doc.String()

	Walk(doc, markVisited)

	assert.Equal(t, snapshot, doc.String())
}

func TestClone(t *testing.T) {
	doc := squad()
	clone := Clone(doc)

	assert.True(t, document.Equal(doc, clone))
	assert.NotSame(t, doc, clone)
	assert.NotSame(t, doc.Get("members"), clone.Get("members"))
	assert.NotSame(t, doc.Get("base"), clone.Get("base"))
	assert.Nil(t, Clone(nil))
}

func TestWalkAsync_MatchesWalk(t *testing.T) {
	fn := func(_ context.Context, n *document.Node) (*document.Node, error) {
		return markVisited(n), nil
	}

	out, err := WalkAsync(context.Background(), squad(), fn)
	require.NoError(t, err)
	assert.True(t, document.Equal(Walk(squad(), markVisited), out))
}

func TestWalkAsync_PreservesOrder(t *testing.T) {
	items := make([]*document.Node, 20)
	for i := range items {
		items[i] = document.Object(document.F("i", document.Int(int64(i))))
	}
	doc := document.Object(document.F("items", document.Array(items...)))

	// later elements finish first
	fn := func(_ context.Context, n *document.Node) (*document.Node, error) {
		if i, ok := n.Get("i").Int64(); ok {
			time.Sleep(time.Duration(20-i) * time.Millisecond)
		}
		return n, nil
	}

	out, err := WalkAsync(context.Background(), doc, fn)
	require.NoError(t, err)
	assert.True(t, document.Equal(doc, out))
}

func TestWalkAsync_RunsSiblingsConcurrently(t *testing.T) {
	var active, peak atomic.Int32
	fn := func(_ context.Context, n *document.Node) (*document.Node, error) {
		cur := active.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		active.Add(-1)
		return n, nil
	}

	doc := document.Array(document.Object(), document.Object(), document.Object(), document.Object())
	_, err := WalkAsync(context.Background(), doc, fn)
	require.NoError(t, err)
	assert.Greater(t, peak.Load(), int32(1))
}

func TestWalkAsync_BoundsSiblingConcurrency(t *testing.T) {
	var active, peak atomic.Int32
	fn := func(_ context.Context, n *document.Node) (*document.Node, error) {
		cur := active.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		active.Add(-1)
		return n, nil
	}

	items := make([]*document.Node, 4*MaxConcurrentSiblings)
	for i := range items {
		items[i] = document.Object(document.F("i", document.Int(int64(i))))
	}
	doc := document.Array(items...)

	out, err := WalkAsync(context.Background(), doc, fn)
	require.NoError(t, err)
	assert.True(t, document.Equal(doc, out))
	assert.LessOrEqual(t, peak.Load(), int32(MaxConcurrentSiblings))
}

func TestWalkAsync_LargeScalarArray(t *testing.T) {
	items := make([]*document.Node, 100000)
	for i := range items {
		items[i] = document.Int(int64(i))
	}
	doc := document.Object(document.F("values", document.Array(items...)))

	var calls atomic.Int32
	out, err := WalkAsync(context.Background(), doc, func(_ context.Context, n *document.Node) (*document.Node, error) {
		calls.Add(1)
		return n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 100000, out.Get("values").Len())
	assert.Equal(t, "99999", out.Get("values").Index(99999).String())
}

func TestWalkAsync_ReturnsFirstError(t *testing.T) {
	errBoom := errors.New("boom")
	fn := func(_ context.Context, n *document.Node) (*document.Node, error) {
		if n.Has("fail") {
			return nil, errBoom
		}
		return n, nil
	}

	doc := document.Object(
		document.F("ok", document.Object()),
		document.F("bad", document.Array(document.Object(document.F("fail", document.Bool(true))))),
	)
	out, err := WalkAsync(context.Background(), doc, fn)
	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, out)
}

func TestWalkAsync_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WalkAsync(ctx, squad(), func(_ context.Context, n *document.Node) (*document.Node, error) {
		return n, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWalkAsync_DoesNotMutateInput(t *testing.T) {
	doc := squad()
	snapshot := Clone(doc)

	_, err := WalkAsync(context.Background(), doc, func(_ context.Context, n *document.Node) (*document.Node, error) {
		return document.Null(), nil
	})
	require.NoError(t, err)
	assert.True(t, document.Equal(snapshot, doc))
}
