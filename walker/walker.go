package walker

import (
	"context"

	"github.com/erraggy/jfather/document"
	"golang.org/x/sync/errgroup"
)

// MaxConcurrentSiblings bounds how many children of one object or array
// WalkAsync walks at the same time.
const MaxConcurrentSiblings = 64

// Func is applied to each rebuilt object during Walk.
type Func func(n *document.Node) *document.Node

// AsyncFunc is applied to each rebuilt object during WalkAsync.
type AsyncFunc func(ctx context.Context, n *document.Node) (*document.Node, error)

// Walk rebuilds n bottom-up, passing every object to fn after its members have
// been walked. The result of fn replaces the object in its parent.
func Walk(n *document.Node, fn Func) *document.Node {
	switch n.Kind() {
	case document.KindObject:
		fields := n.Fields()
		for i := range fields {
			fields[i].Value = Walk(fields[i].Value, fn)
		}
		return fn(document.Object(fields...))

	case document.KindArray:
		items := n.Items()
		for i := range items {
			items[i] = Walk(items[i], fn)
		}
		return document.Array(items...)

	default:
		return n
	}
}

// WalkAsync is the concurrent form of Walk. Siblings are walked in separate
// goroutines and the object holding them is passed to fn once all of them
// have completed.
func WalkAsync(ctx context.Context, n *document.Node, fn AsyncFunc) (*document.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch n.Kind() {
	case document.KindObject:
		fields := n.Fields()
		values, err := walkAll(ctx, len(fields), func(i int) *document.Node { return fields[i].Value }, fn)
		if err != nil {
			return nil, err
		}
		for i := range fields {
			fields[i].Value = values[i]
		}
		return fn(ctx, document.Object(fields...))

	case document.KindArray:
		items, err := walkAll(ctx, n.Len(), n.Index, fn)
		if err != nil {
			return nil, err
		}
		return document.Array(items...), nil

	default:
		return n, nil
	}
}

// walkAll walks count children concurrently and returns the results in
// their original order. Scalar children are kept as they are, without a goroutine.
func walkAll(ctx context.Context, count int, child func(int) *document.Node, fn AsyncFunc) ([]*document.Node, error) {
	results := make([]*document.Node, count)
	if count == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentSiblings)
	for i := range count {
		if c := child(i); !c.IsObject() && !c.IsArray() {
			results[i] = c
			continue
		}
		g.Go(func() error {
			out, err := WalkAsync(gctx, child(i), fn)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Clone returns a deep copy of n. Scalars are shared.
func Clone(n *document.Node) *document.Node {
	return Walk(n, func(obj *document.Node) *document.Node { return obj })
}
