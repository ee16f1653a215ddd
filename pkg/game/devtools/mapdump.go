// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/renderer"
	"eightcircuits/pkg/game/state"
)

const sceneDumpFilename = "scene.txt"

// Dump map dimensions and scale, in cells and world units per cell.
const (
	dumpCols         = 81
	dumpRows         = 41
	dumpUnitsPerCell = 2.0
)

// DumpSceneToFile writes a full debug dump of the live realm to scene.txt
// and returns its absolute path.
func DumpSceneToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(sceneDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteSceneDump(f, g); err != nil {
		return "", err
	}
	return absPath, nil
}

// WriteSceneDump writes metadata, a top-down map and every node of the live
// realm. Format is human-readable (sections, key: value, consistent structure).
func WriteSceneDump(w io.Writer, g *state.Game) error {
	if g.Coordinator == nil || g.Coordinator.Active() == nil {
		return fmt.Errorf("no active realm")
	}
	r := g.Coordinator.Active()
	s := r.Scene()

	// --- Metadata ---
	fmt.Fprintln(w, "=== SCENE DUMP DEBUG (realm, avatar, nodes) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "realm_id: %d\n", r.ID())
	fmt.Fprintf(w, "realm_name: %q\n", r.Name())
	fmt.Fprintf(w, "initialized: %v\n", r.Initialized())
	fmt.Fprintf(w, "active: %v\n", r.Active())
	fmt.Fprintf(w, "elapsed: %.3f\n", g.Clock.Elapsed())
	fmt.Fprintf(w, "phase: %s\n", g.Phase)
	fmt.Fprintf(w, "control_mode: %s\n", g.Mode)
	if g.Player != nil {
		p := g.Player.Position()
		yaw, pitch := g.Player.Rotation()
		fmt.Fprintf(w, "player_position: %.3f,%.3f,%.3f\n", p.X(), p.Y(), p.Z())
		fmt.Fprintf(w, "player_rotation: %.3f,%.3f\n", yaw, pitch)
		fmt.Fprintf(w, "player_grounded: %v\n", g.Player.Grounded())
	}
	fmt.Fprintf(w, "sky: %s\n", colorHex(s.Sky))
	fmt.Fprintf(w, "fog: %s density %.4f\n", colorHex(s.Fog.Color), s.Fog.Density)
	fmt.Fprintf(w, "nodes: %d objects: %d lights: %d particles: %d\n",
		s.Len(), s.Count(scene.KindObject), s.Count(scene.KindLight), s.Count(scene.KindParticles))
	fmt.Fprintln(w, "")

	// --- Status ---
	fmt.Fprintln(w, "--- Status ---")
	for _, line := range g.Status {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintf(w, "--- Map (top-down, %.0f units per cell, @ = player) ---\n", dumpUnitsPerCell)
	for _, row := range renderer.Raster(g, dumpCols, dumpRows, dumpUnitsPerCell) {
		line := make([]rune, len(row))
		for i, c := range row {
			line[i] = '.'
			if c.Glyph != 0 {
				line[i] = c.Glyph
			}
		}
		fmt.Fprintln(w, string(line))
	}
	fmt.Fprintln(w, "")

	// --- Nodes grouped by tag ---
	fmt.Fprintln(w, "--- Nodes (by tag, then id) ---")
	byTag := make(map[string][]*scene.Node)
	s.Each(func(n *scene.Node) {
		byTag[n.Tag] = append(byTag[n.Tag], n)
	})
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(w, "%s:\n", tag)
		for _, n := range byTag[tag] {
			fmt.Fprintf(w, "  id: %d kind: %s label: %q pos: %.2f,%.2f,%.2f scale: %.2f color: %s intensity: %.2f opacity: %.2f count: %d hidden: %v\n",
				n.ID, n.Kind, n.Label, n.Position.X(), n.Position.Y(), n.Position.Z(),
				n.Scale, colorHex(n.Color), n.Intensity, n.Opacity, n.Count, n.Hidden)
		}
	}
	return nil
}

func colorHex(c scene.Color) string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
