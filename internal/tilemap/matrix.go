package tilemap

// At returns the tile at column x, row y.
func (t Template) At(x, y int) (uint32, bool) {
	if x < 0 || y < 0 || x >= int(t.Width) || y >= int(t.Height) {
		return 0, false
	}
	i := y*int(t.Width) + x
	if i >= len(t.TileData) {
		return 0, false
	}
	return t.TileData[i], true
}

// CollisionMatrix marks every cell whose tile satisfies blocked. A nil
// blocked treats every tile other than empty (0) and the spawn marker as
// solid.
func (t Template) CollisionMatrix(blocked func(tile uint32) bool) [][]bool {
	if blocked == nil {
		blocked = func(tile uint32) bool { return tile != 0 && tile != SpawnTile }
	}

	matrix := make([][]bool, t.Height)
	for i := range matrix {
		matrix[i] = make([]bool, t.Width)
	}

	if t.Width == 0 {
		return matrix
	}
	for i, tile := range t.TileData {
		posX := i % int(t.Width)
		posY := i / int(t.Width)
		if posY >= len(matrix) {
			break
		}
		matrix[posY][posX] = blocked(tile)
	}
	return matrix
}
