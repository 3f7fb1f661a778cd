package services

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"hex-coverage-planner/internal/domain"
)

// Fingerprint identifies the planning input of one vehicle.
//
// Identical cell sets (in any order) planned with identical options produce the
// same fingerprint, so a cached route can stand in for a recomputed one.
func Fingerprint(cells []domain.Cell, opts PlanOptions) (string, error) {
	uniq, err := uniqueCells(cells, true)
	if err != nil {
		return "", err
	}

	h := xxhash.New()
	_, _ = h.WriteString(opts.metric().Name())
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(opts.Route.startPolicy().Name())
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.FormatFloat(opts.Route.PriorityWeight, 'g', -1, 64))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(opts.Route.TieBreak.String())

	var buf [32]byte
	for _, c := range uniq {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(int64(c.ID)))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(c.Position.X))
		binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(c.Position.Y))
		binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(c.Priority))
		_, _ = h.Write(buf[:])
	}

	return strconv.FormatUint(h.Sum64(), 16), nil
}
