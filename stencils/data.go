package stencils

var stencilData = map[string]map[string][][]int{
	"D2Q9": {
		"walberla": {
			{0, 0},
			{0, 1}, {0, -1}, {-1, 0}, {1, 0},
			{-1, 1}, {1, 1}, {-1, -1}, {1, -1},
		},
		"counterclockwise": {
			{0, 0},
			{1, 0}, {0, 1}, {-1, 0}, {0, -1},
			{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
		},
		"braunschweig": {
			{0, 0},
			{-1, 1}, {-1, 0}, {-1, -1}, {0, -1},
			{1, -1}, {1, 0}, {1, 1}, {0, 1},
		},
	},
	"D3Q15": {
		"walberla": {
			{0, 0, 0},
			{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1},
			{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1}, {1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
		},
		"premnath": {
			{0, 0, 0},
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
			{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
			{1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
		},
	},
	"D3Q19": {
		"walberla": {
			{0, 0, 0},
			{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1},
			{-1, 1, 0}, {1, 1, 0}, {-1, -1, 0}, {1, -1, 0},
			{0, 1, 1}, {0, -1, 1}, {-1, 0, 1}, {1, 0, 1},
			{0, 1, -1}, {0, -1, -1}, {-1, 0, -1}, {1, 0, -1},
		},
		"braunschweig": {
			{0, 0, 0},
			{1, 0, 0}, {-1, 0, 0},
			{0, 1, 0}, {0, -1, 0},
			{0, 0, 1}, {0, 0, -1},
			{1, 1, 0}, {-1, -1, 0},
			{1, -1, 0}, {-1, 1, 0},
			{1, 0, 1}, {-1, 0, -1},
			{1, 0, -1}, {-1, 0, 1},
			{0, 1, 1}, {0, -1, -1},
			{0, 1, -1}, {0, -1, 1},
		},
		"premnath": {
			{0, 0, 0},
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
			{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
			{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
			{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
		},
	},
	"D3Q27": {
		"walberla": {
			{0, 0, 0},
			{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1},
			{-1, 1, 0}, {1, 1, 0}, {-1, -1, 0}, {1, -1, 0},
			{0, 1, 1}, {0, -1, 1}, {-1, 0, 1}, {1, 0, 1},
			{0, 1, -1}, {0, -1, -1}, {-1, 0, -1}, {1, 0, -1},
			{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1}, {1, 1, -1}, {-1, 1, -1}, {1, -1, -1},
			{-1, -1, -1},
		},
		"premnath": {
			{0, 0, 0},
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
			{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
			{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
			{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
			{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
			{1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
		},
	},
}
