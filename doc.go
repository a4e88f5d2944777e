// Package trellis is a retained-mode 2D layout engine for [Ebitengine].
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root] and
// compute their draw size, position and screen-space quad from a small set
// of inputs: size, position, scale, rotation (degrees), shear, anchor,
// origin, margin, padding, relative size and position axes, auto-size axes
// and bypass axes.
//
// # Quick start
//
//	scene := trellis.NewScene()
//
//	panel := trellis.NewContainer("panel")
//	panel.SetAutoSizeAxes(trellis.AxesBoth)
//	panel.SetPadding(trellis.Uniform(8))
//	scene.Root().AddChild(panel)
//
//	label := trellis.NewBox("label", 120, 24)
//	panel.AddChild(label)
//
//	trellis.Run(scene, trellis.RunConfig{
//		Title: "My Layout", Width: 640, Height: 480,
//	})
//
// # Invalidation
//
// Computed geometry is cached per node and recomputed on read. Setters
// clear only the cached categories that depend on the changed input
// (see [Invalidation]) and propagate the change to the parent when its
// auto-size or flow placement depends on it, and to the children when
// their relative size or matrices depend on it. A full recompute after
// [InvalidateTree] always produces the same values as the incremental path.
//
// # Auto-size
//
// A node with auto-size axes takes its size on those axes from the extent
// of its children, measured after each child's own transform, so a rotated
// or sheared child contributes its transformed bounds. Children that are
// relatively sized or positioned on an auto axis of their parent, and
// children that bypass an axis, do not contribute.
//
// # Arrangement
//
// [NewFlow] places children one after another, wrapping for [FlowFull].
// [NewGrid] divides the content area into equal cells.
//
// # Automation
//
// Interaction can be injected with [Scene.InjectClick] and friends, and
// whole visual test cases can be scripted as JSON with [LoadTestScript],
// including property mutations addressed by node name.
//
// [Ebitengine]: https://ebitengine.org
package trellis
