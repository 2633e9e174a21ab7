package model

import "github.com/secmon-lab/riskscope/pkg/domain/types"

// coordinateTable is the fixed likelihood x impact lookup used by the
// coordinate method, indexed [likelihood-1][impact-1]. The values are a
// reference matrix, not a formula: low-likelihood/high-impact cells are
// deliberately weighted well above their product. Do not derive or "fix" them.
var coordinateTable = [types.MaxRating][types.MaxRating]int{
	{1, 3, 5, 8, 20},
	{2, 7, 11, 13, 21},
	{4, 10, 14, 17, 22},
	{6, 12, 16, 19, 24},
	{9, 15, 18, 23, 25},
}

// CoordinateScore looks up the coordinate-method score. ok is false when
// either rating is outside [1,5].
func CoordinateScore(likelihood, impact int) (int, bool) {
	if likelihood < types.MinRating || likelihood > types.MaxRating ||
		impact < types.MinRating || impact > types.MaxRating {
		return 0, false
	}
	return coordinateTable[likelihood-1][impact-1], true
}
