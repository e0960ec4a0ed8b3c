package navigation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gonewx/towerdefense/pkg/utils"
)

// assertPathClear 沿路径每隔半个单位取样，检查没有点落在原始障碍物内部
func assertPathClear(t *testing.T, g *ObstacleGraph, path []utils.Point) {
	t.Helper()
	const step = 0.5
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		n := int(math.Ceil(a.DistanceTo(b)/step)) + 1
		for k := 0; k <= n; k++ {
			p := utils.Lerp(a, b, float64(k)/float64(n))
			for _, poly := range g.Obstacles() {
				if poly.Contains(p) {
					t.Errorf("segment %v -> %v enters obstacle %v at %v", a, b, poly, p)
					return
				}
			}
		}
	}
}

func TestFindPath_Direct(t *testing.T) {
	g := NewObstacleGraph(DefaultBufferRadius)
	g.AddObstacles([]utils.Polygon{utils.Rect(500, 800, 100, 100)})

	from, to := utils.Pt(-200, 384), utils.Pt(1224, 384)
	path := g.FindPath(from, to)

	if len(path) != 2 {
		t.Fatalf("expected direct path of 2 points, got %v", path)
	}
	if !path[0].Equal(from) || !path[1].Equal(to) {
		t.Errorf("path endpoints = %v, want [%v %v]", path, from, to)
	}
}

func TestFindPath_AroundObstacle(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []utils.Polygon
	}{
		{"单个方块", []utils.Polygon{utils.Rect(500, 384, 200, 200)}},
		{"两个方块错开", []utils.Polygon{
			utils.Rect(300, 384, 100, 300),
			utils.Rect(700, 300, 100, 300),
		}},
		{"三角形", []utils.Polygon{{utils.Pt(450, 250), utils.Pt(600, 384), utils.Pt(450, 520)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewObstacleGraph(DefaultBufferRadius)
			g.AddObstacles(tt.obstacles)

			from, to := utils.Pt(-200, 384), utils.Pt(1224, 384)
			path := g.FindPath(from, to)
			if len(path) < 3 {
				t.Fatalf("expected detour, got %v", path)
			}
			if !path[0].Equal(from) || !path[len(path)-1].Equal(to) {
				t.Errorf("path must start at from and end at to, got %v", path)
			}
			assertPathClear(t, g, path)
		})
	}
}

func TestFindPath_TemporaryNodesReleased(t *testing.T) {
	g := NewObstacleGraph(DefaultBufferRadius)
	g.AddObstacles([]utils.Polygon{utils.Rect(500, 384, 200, 200)})

	nodes, edges := g.NodeCount(), g.EdgeCount()
	for i := 0; i < 3; i++ {
		g.FindPath(utils.Pt(-200, 384+float64(i*10)), utils.Pt(1224, 384))
	}
	// 不可达的查询同样要释放临时节点
	g.FindPath(utils.Pt(500, 384), utils.Pt(1224, 384))

	if g.NodeCount() != nodes || g.EdgeCount() != edges {
		t.Errorf("graph changed after queries: nodes %d->%d, edges %d->%d",
			nodes, g.NodeCount(), edges, g.EdgeCount())
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	g := NewObstacleGraph(DefaultBufferRadius)
	// 起点被四面墙围住
	g.AddObstacles([]utils.Polygon{
		utils.Rect(0, 200, 400, 40),
		utils.Rect(0, -200, 400, 40),
		utils.Rect(200, 0, 40, 400),
		utils.Rect(-200, 0, 40, 400),
	})

	path := g.FindPath(utils.Pt(0, 0), utils.Pt(1000, 0))
	if len(path) != 0 {
		t.Errorf("expected empty path for enclosed start, got %v", path)
	}
}

func TestAddObstacles_CutsExistingEdges(t *testing.T) {
	g := NewObstacleGraph(DefaultBufferRadius)
	g.AddObstacles([]utils.Polygon{utils.Rect(200, 384, 100, 100)})
	before := g.FindPath(utils.Pt(-200, 384), utils.Pt(1224, 384))

	g.AddObstacles([]utils.Polygon{utils.Rect(700, 384, 150, 400)})
	after := g.FindPath(utils.Pt(-200, 384), utils.Pt(1224, 384))

	if len(g.Obstacles()) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(g.Obstacles()))
	}
	if utils.PolylineLength(after) <= utils.PolylineLength(before) {
		t.Errorf("new obstacle should lengthen the route: before %v, after %v",
			utils.PolylineLength(before), utils.PolylineLength(after))
	}
	assertPathClear(t, g, after)
}

func TestObstacleGraph_Reset(t *testing.T) {
	g := NewObstacleGraph(DefaultBufferRadius)
	g.AddObstacles([]utils.Polygon{utils.Rect(500, 384, 200, 200)})
	g.Reset()

	if g.NodeCount() != 0 || len(g.Obstacles()) != 0 {
		t.Errorf("Reset() left %d nodes, %d obstacles", g.NodeCount(), len(g.Obstacles()))
	}
	if path := g.FindPath(utils.Pt(0, 0), utils.Pt(10, 0)); len(path) != 2 {
		t.Errorf("expected direct path after reset, got %v", path)
	}
}

func TestFindPath_VertexAligned(t *testing.T) {
	tests := []struct {
		name     string
		obstacle utils.Polygon
		from, to utils.Point
	}{
		{"对角线穿过两个角", utils.Rect(5, 5, 10, 10), utils.Pt(-100, -100), utils.Pt(500, 500)},
		{"反向对角线", utils.Rect(500, 384, 100, 100), utils.Pt(900, -16), utils.Pt(100, 784)},
		{"与边共线", utils.Rect(500, 384, 200, 200), utils.Pt(-200, 284), utils.Pt(1224, 284)},
		{"菱形顶点对齐", utils.Polygon{utils.Pt(500, 300), utils.Pt(600, 384), utils.Pt(500, 468), utils.Pt(400, 384)},
			utils.Pt(-200, 384), utils.Pt(1224, 384)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewObstacleGraph(DefaultBufferRadius)
			g.AddObstacles([]utils.Polygon{tt.obstacle})

			path := g.FindPath(tt.from, tt.to)
			if len(path) < 3 {
				t.Fatalf("expected detour around obstacle, got %v", path)
			}
			assertPathClear(t, g, path)
		})
	}
}

func TestFindPath_RandomObstacles(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		rng := rand.New(rand.NewPCG(seed, 0))
		var obstacles []utils.Polygon
		for i := 0; i < 1+rng.IntN(5); i++ {
			cx := 100 + rng.Float64()*800
			cy := 100 + rng.Float64()*568
			obstacles = append(obstacles, utils.Rect(cx, cy, 20+rng.Float64()*180, 20+rng.Float64()*180))
		}

		g := NewObstacleGraph(DefaultBufferRadius)
		g.AddObstacles(obstacles)

		from := utils.Pt(-200, rng.Float64()*768)
		to := utils.Pt(1224, rng.Float64()*768)
		path := g.FindPath(from, to)
		if len(path) == 0 {
			t.Logf("seed %d: no route", seed)
			continue
		}
		assertPathClear(t, g, path)
	}
}
