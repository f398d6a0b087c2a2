package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/lexigarden/lexigarden/internal/chunk"
	"github.com/lexigarden/lexigarden/internal/garden"
	"github.com/lexigarden/lexigarden/internal/service"
	"github.com/lexigarden/lexigarden/internal/store"
)

var statusIcons = map[garden.TreeStatus]string{
	garden.StatusSeed:    "\U0001F331",
	garden.StatusGrowing: "\U0001F33F",
	garden.StatusBloomed: "\U0001F338",
	garden.StatusDying:   "\U0001F940",
	garden.StatusDead:    "\U0001FAA6",
}

// RenderGarden writes one line per tree in grid order.
func RenderGarden(output io.Writer, trees []store.UserTree) {
	if len(trees) == 0 {
		fmt.Fprintln(output, "The garden is empty. Complete a lesson to plant your first seed!")
		return
	}
	for _, tree := range trees {
		icon, ok := statusIcons[garden.TreeStatus(tree.Status)]
		if !ok {
			icon = "?"
		}
		fmt.Fprintf(output, "%s  %-20s %-8s stage %2d/%d  health %3d/%d  sun drops %d\n",
			icon, tree.SkillPathID, tree.Status,
			tree.GrowthStage, garden.MaxGrowthStage,
			tree.Health, garden.MaxHealth,
			tree.SunDropsTotal,
		)
		if tree.DiedAt != nil {
			fmt.Fprintf(output, "    died on %s, send a health gift or replant\n",
				tree.DiedAt.Format(time.DateOnly))
		}
	}
}

// RenderDueQueue lists the due chunks in review order. resolve maps a chunk
// ID to its catalog entry; unknown IDs are printed as-is.
func RenderDueQueue(output io.Writer, queue []service.DueChunk, resolve func(id string) (chunk.Chunk, bool)) {
	if len(queue) == 0 {
		fmt.Fprintln(output, "Nothing is due. Come back tomorrow!")
		return
	}
	for i, due := range queue {
		label := due.ChunkID
		if found, ok := resolve(due.ChunkID); ok {
			label = fmt.Sprintf("%s (%s)", found.Text, found.ID)
		}
		fmt.Fprintf(output, "%2d. %-40s [%s]\n", i+1, label, due.State.Status)
	}
}
