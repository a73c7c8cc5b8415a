// Package generator carves dungeon layouts by binary space partitioning. The
// developer project uses it for its generated area map.
package generator

import (
	"fmt"
	"math/rand"
)

// Room is a rectangle of floor carved into a leaf of the partition.
type Room struct {
	X, Y, Width, Height int
	Name                string
}

// Center returns the room's middle tile.
func (r Room) Center() (int, int) { return r.X + r.Width/2, r.Y + r.Height/2 }

// Layout is a generated dungeon. Tiles outside rooms and corridors are wall.
type Layout struct {
	Width, Height  int
	Floor          []bool // [y*Width+x]
	Rooms          []Room
	StartX, StartY int
	// ExitX, ExitY is the floor tile furthest from the start by walking distance.
	ExitX, ExitY int
}

// IsFloor reports whether (x, y) is inside the layout and walkable.
func (l *Layout) IsFloor(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	return l.Floor[y*l.Width+x]
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *Room
}

var roomNames = []string{
	"Hall", "Crypt", "Armory", "Library", "Cellar",
	"Shrine", "Vault", "Barracks", "Kitchen", "Storeroom",
}

var roomAdjectives = []string{
	"Old", "Flooded", "Dark", "Forgotten", "Sealed",
	"Dusty", "Collapsed", "Quiet",
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 4 // Minimum size of a room
	roomPadding = 2 // Padding between room and node edge
)

type bsp struct {
	rng    *rand.Rand
	layout *Layout
}

// Generate carves a width by height dungeon. The same seed gives the same
// layout. Layouts smaller than 2*minNodeSize+2 both ways get a single room.
func Generate(width, height int, seed int64) *Layout {
	width, height = max(width, minRoomSize+roomPadding+2), max(height, minRoomSize+roomPadding+2)
	b := &bsp{
		rng:    rand.New(rand.NewSource(seed)),
		layout: &Layout{Width: width, Height: height, Floor: make([]bool, width*height)},
	}

	// leave a one tile border of wall
	root := &bspNode{x: 1, y: 1, width: width - 2, height: height - 2}
	b.split(root, minNodeSize)
	b.createRooms(root)
	b.carveRooms(root)
	b.connectRooms(root)

	l := b.layout
	l.Rooms = collectRooms(root)
	start := l.Rooms[b.rng.Intn(len(l.Rooms))]
	l.StartX, l.StartY = start.Center()
	l.ExitX, l.ExitY = furthest(l, l.StartX, l.StartY)
	return l
}

// split recursively splits a BSP node
func (b *bsp) split(node *bspNode, minSize int) {
	var splitHorizontal bool
	if node.width > node.height && node.width >= minSize*2 {
		splitHorizontal = false
	} else if node.height > node.width && node.height >= minSize*2 {
		splitHorizontal = true
	} else if node.width >= minSize*2 && node.height >= minSize*2 {
		splitHorizontal = b.rng.Intn(2) == 0
	} else if node.width >= minSize*2 {
		splitHorizontal = false
	} else if node.height >= minSize*2 {
		splitHorizontal = true
	} else {
		return // Can't split
	}

	if splitHorizontal {
		at := minSize + b.rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: at}
		node.right = &bspNode{x: node.x, y: node.y + at, width: node.width, height: node.height - at}
	} else {
		at := minSize + b.rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, y: node.y, width: node.width - at, height: node.height}
	}

	b.split(node.left, minSize)
	b.split(node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func (b *bsp) createRooms(node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			b.createRooms(node.left)
		}
		if node.right != nil {
			b.createRooms(node.right)
		}
		return
	}

	w := min(minRoomSize+b.rng.Intn(max(node.width-minRoomSize-roomPadding+1, 1)), node.width-roomPadding)
	h := min(minRoomSize+b.rng.Intn(max(node.height-minRoomSize-roomPadding+1, 1)), node.height-roomPadding)
	w, h = max(w, 1), max(h, 1)

	name := fmt.Sprintf("%s %s", roomAdjectives[b.rng.Intn(len(roomAdjectives))], roomNames[b.rng.Intn(len(roomNames))])
	node.room = &Room{
		X:      node.x + b.rng.Intn(node.width-w),
		Y:      node.y + b.rng.Intn(node.height-h),
		Width:  w,
		Height: h,
		Name:   name,
	}
}

func (b *bsp) carve(x, y int) {
	b.layout.Floor[y*b.layout.Width+x] = true
}

// carveRooms marks room tiles as floor
func (b *bsp) carveRooms(node *bspNode) {
	if r := node.room; r != nil {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				b.carve(x, y)
			}
		}
	}
	if node.left != nil {
		b.carveRooms(node.left)
	}
	if node.right != nil {
		b.carveRooms(node.right)
	}
}

// connectRooms joins a room of each subtree with an L-shaped corridor
func (b *bsp) connectRooms(node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	left, right := b.pickRoom(node.left), b.pickRoom(node.right)
	if left != nil && right != nil {
		lx, ly := left.Center()
		rx, ry := right.Center()
		if b.rng.Intn(2) == 0 {
			b.corridorH(ly, lx, rx)
			b.corridorV(rx, ly, ry)
		} else {
			b.corridorV(lx, ly, ry)
			b.corridorH(ry, lx, rx)
		}
	}

	b.connectRooms(node.left)
	b.connectRooms(node.right)
}

func (b *bsp) corridorH(y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		b.carve(x, y)
	}
}

func (b *bsp) corridorV(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		b.carve(x, y)
	}
}

// pickRoom returns a room from a subtree (picks randomly from leaves)
func (b *bsp) pickRoom(node *bspNode) *Room {
	if node.room != nil {
		return node.room
	}
	var left, right *Room
	if node.left != nil {
		left = b.pickRoom(node.left)
	}
	if node.right != nil {
		right = b.pickRoom(node.right)
	}
	if left != nil && right != nil {
		if b.rng.Intn(2) == 0 {
			return left
		}
		return right
	}
	if left != nil {
		return left
	}
	return right
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []Room {
	var rooms []Room
	if node.room != nil {
		rooms = append(rooms, *node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}

// furthest walks the floor breadth first from (sx, sy) and returns the last
// tile reached.
func furthest(l *Layout, sx, sy int) (int, int) {
	type tileDist struct{ x, y, dist int }
	visited := make([]bool, len(l.Floor))
	visited[sy*l.Width+sx] = true
	queue := []tileDist{{sx, sy, 0}}
	best := queue[0]
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.dist > best.dist {
			best = cur
		}
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if !l.IsFloor(nx, ny) || visited[ny*l.Width+nx] {
				continue
			}
			visited[ny*l.Width+nx] = true
			queue = append(queue, tileDist{nx, ny, cur.dist + 1})
		}
	}
	return best.x, best.y
}
