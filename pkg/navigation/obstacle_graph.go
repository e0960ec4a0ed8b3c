// Package navigation 提供绕开多边形障碍物的寻路
//
// ObstacleGraph 维护一组多边形障碍物以及由扩张后多边形顶点构成的可见性图，
// 查询时临时插入起点/终点节点，A* 搜索完成后立即移除。
package navigation

import (
	"container/heap"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/gonewx/towerdefense/pkg/utils"
)

// NodeID 图节点标识
type NodeID int

// DefaultBufferRadius 障碍物扩张半径（角色半宽）
const DefaultBufferRadius = 32.0

// tempObstacle 临时查询节点的障碍物索引
const tempObstacle = -1

type graphNode struct {
	id       NodeID
	pos      utils.Point
	obstacle int                 // 所属障碍物索引，临时节点为 tempObstacle
	edges    map[NodeID]float64 // 邻居 -> 边长
}

// ObstacleGraph 障碍物可见性图
type ObstacleGraph struct {
	bufferRadius float64
	obstacles    []utils.Polygon // 原始障碍物
	inflated     []utils.Polygon // 扩张后的障碍物（用于可见性判断）
	nodes        map[NodeID]*graphNode
	nextID       NodeID
}

// NewObstacleGraph 创建空的障碍物图
func NewObstacleGraph(bufferRadius float64) *ObstacleGraph {
	return &ObstacleGraph{
		bufferRadius: bufferRadius,
		nodes:        make(map[NodeID]*graphNode),
		nextID:       1,
	}
}

// BufferRadius 返回扩张半径
func (g *ObstacleGraph) BufferRadius() float64 {
	return g.bufferRadius
}

// Obstacles 返回已注册的原始障碍物
func (g *ObstacleGraph) Obstacles() []utils.Polygon {
	return slices.Clone(g.obstacles)
}

// InflatedObstacles 返回扩张后的障碍物（转向行为的避障目标使用）
func (g *ObstacleGraph) InflatedObstacles() []utils.Polygon {
	return slices.Clone(g.inflated)
}

// NodeCount 返回图中节点数量
func (g *ObstacleGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount 返回无向边数量
func (g *ObstacleGraph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.edges)
	}
	return total / 2
}

// Reset 清空全部障碍物与节点
func (g *ObstacleGraph) Reset() {
	g.obstacles = nil
	g.inflated = nil
	g.nodes = make(map[NodeID]*graphNode)
	g.nextID = 1
}

// AddObstacles 合并新的障碍物
//
// 新障碍物会切断被其阻挡的已有边，并把自身扩张顶点接入图中。
// 已经分配给移动中角色的路径不受影响，需要调用方自行重新寻路。
func (g *ObstacleGraph) AddObstacles(polygons []utils.Polygon) {
	if len(polygons) == 0 {
		return
	}

	firstNew := len(g.inflated)
	for _, poly := range polygons {
		if len(poly) < 3 {
			log.Warnf("[ObstacleGraph] 忽略顶点不足的障碍物: %d 个顶点", len(poly))
			continue
		}
		g.obstacles = append(g.obstacles, poly.CounterClockwise())
		g.inflated = append(g.inflated, poly.Inflate(g.bufferRadius))
	}
	newInflated := g.inflated[firstNew:]

	// 1. 移除落入新障碍物内部的旧节点，切断被新障碍物阻挡的旧边
	for _, id := range g.sortedNodeIDs() {
		node := g.nodes[id]
		for _, poly := range newInflated {
			if poly.Contains(node.pos) {
				g.removeNode(id)
				break
			}
		}
	}
	for _, id := range g.sortedNodeIDs() {
		node := g.nodes[id]
		for nb := range node.edges {
			other := g.nodes[nb]
			for _, poly := range newInflated {
				if poly.SegmentBlocked(node.pos, other.pos) {
					delete(node.edges, nb)
					delete(other.edges, id)
					break
				}
			}
		}
	}

	// 2. 新障碍物的扩张顶点作为新节点接入
	for i, poly := range newInflated {
		obstacleIndex := firstNew + i
		for _, v := range poly {
			if g.insideAnyObstacle(v) {
				continue
			}
			g.connectUsingObstacles(g.addNode(v, obstacleIndex))
		}
	}

	log.Debugf("[ObstacleGraph] 新增 %d 个障碍物，共 %d 个障碍物, %d 个节点, %d 条边",
		len(newInflated), len(g.obstacles), g.NodeCount(), g.EdgeCount())
}

// FindPath 计算从 from 到 to 绕开所有障碍物的路径
//
// 返回值包含起点和终点；无障碍时为直线 [from, to]；
// 无法到达（例如起点被完全包围）时返回空切片，调用方应原地等待。
// 查询使用的临时节点无论成功与否都会在返回前移除。
func (g *ObstacleGraph) FindPath(from, to utils.Point) []utils.Point {
	start := g.addNode(from, tempObstacle)
	end := g.addNode(to, tempObstacle)
	defer g.removeNode(start.id)
	defer g.removeNode(end.id)

	g.connectUsingObstacles(start)
	g.connectUsingObstacles(end)

	ids := g.astar(start.id, end.id)
	if len(ids) == 0 {
		return []utils.Point{}
	}
	path := make([]utils.Point, len(ids))
	for i, id := range ids {
		path[i] = g.nodes[id].pos
	}
	return path
}

// IsVisible 判断两点之间的线段是否未被任何障碍物阻挡
func (g *ObstacleGraph) IsVisible(a, b utils.Point) bool {
	for _, poly := range g.inflated {
		if poly.SegmentBlocked(a, b) {
			return false
		}
	}
	return true
}

func (g *ObstacleGraph) addNode(pos utils.Point, obstacle int) *graphNode {
	node := &graphNode{
		id:       g.nextID,
		pos:      pos,
		obstacle: obstacle,
		edges:    make(map[NodeID]float64),
	}
	g.nextID++
	g.nodes[node.id] = node
	return node
}

func (g *ObstacleGraph) removeNode(id NodeID) {
	node, ok := g.nodes[id]
	if !ok {
		return
	}
	for nb := range node.edges {
		if other, exists := g.nodes[nb]; exists {
			delete(other.edges, id)
		}
	}
	delete(g.nodes, id)
}

// connectUsingObstacles 将节点与所有可见节点相连
func (g *ObstacleGraph) connectUsingObstacles(node *graphNode) {
	for _, id := range g.sortedNodeIDs() {
		if id == node.id {
			continue
		}
		other := g.nodes[id]
		if !g.IsVisible(node.pos, other.pos) {
			continue
		}
		d := node.pos.DistanceTo(other.pos)
		node.edges[id] = d
		other.edges[node.id] = d
	}
}

func (g *ObstacleGraph) insideAnyObstacle(p utils.Point) bool {
	for _, poly := range g.inflated {
		if poly.Contains(p) {
			return true
		}
	}
	return false
}

func (g *ObstacleGraph) sortedNodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ========== A* ==========

type searchItem struct {
	id    NodeID
	f     float64
	index int
}

type priorityQueue []*searchItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f == pq[j].f {
		return pq[i].id < pq[j].id
	}
	return pq[i].f < pq[j].f
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*searchItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func (g *ObstacleGraph) astar(start, goal NodeID) []NodeID {
	goalPos := g.nodes[goal].pos
	costSoFar := map[NodeID]float64{start: 0}
	cameFrom := make(map[NodeID]NodeID)
	closed := make(map[NodeID]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &searchItem{id: start, f: g.nodes[start].pos.DistanceTo(goalPos)})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*searchItem).id
		if current == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		if closed[current] {
			continue
		}
		closed[current] = true

		node := g.nodes[current]
		neighbors := make([]NodeID, 0, len(node.edges))
		for nb := range node.edges {
			neighbors = append(neighbors, nb)
		}
		slices.Sort(neighbors)

		for _, nb := range neighbors {
			if closed[nb] {
				continue
			}
			newCost := costSoFar[current] + node.edges[nb]
			if old, seen := costSoFar[nb]; seen && newCost >= old {
				continue
			}
			costSoFar[nb] = newCost
			cameFrom[nb] = current
			heap.Push(pq, &searchItem{id: nb, f: newCost + g.nodes[nb].pos.DistanceTo(goalPos)})
		}
	}
	return nil
}

func reconstructPath(cameFrom map[NodeID]NodeID, start, goal NodeID) []NodeID {
	path := []NodeID{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}
