package tsl

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

//GraphFormats maps figure type names to graphviz formats.
var GraphFormats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
}

//expressionNode describes one operand of the gradient expression.
type expressionNode struct {
	id         string
	title      string
	rows, cols int
	inputs     []string
	leaf       bool
}

func (node expressionNode) graphDescription() string {
	return fmt.Sprintf("%s\n%dx%d", node.title, node.rows, node.cols)
}

//expression lists the operands of X'ᵗ·X'·θ − X'ᵗ·y in evaluation order.
func (model *LinearModel) expression() []expressionNode {
	h, w := model.x.Dims()
	return []expressionNode{
		{id: "x", title: "X'", rows: h, cols: w, leaf: true},
		{id: "y", title: "y", rows: h, cols: 1, leaf: true},
		{id: "theta", title: "θ", rows: w, cols: 1, leaf: true},
		{id: "xT", title: "X'ᵗ", rows: w, cols: h, inputs: []string{"x"}},
		{id: "xTx", title: "X'ᵗ·X'", rows: w, cols: w, inputs: []string{"xT", "x"}},
		{id: "xTxTheta", title: "X'ᵗ·X'·θ", rows: w, cols: 1, inputs: []string{"xTx", "theta"}},
		{id: "xTy", title: "X'ᵗ·y", rows: w, cols: 1, inputs: []string{"xT", "y"}},
		{id: "gradient", title: "gradient", rows: w, cols: 1, inputs: []string{"xTxTheta", "xTy"}},
	}
}

//DrawGraph builds a graph of the gradient expression. Every node is labeled with its shape.
func (model *LinearModel) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	HandleError(err)

	nodes := make(map[string]*cgraph.Node)
	for _, operand := range model.expression() {
		currentNode, err := graph.CreateNode(operand.id)
		HandleError(err)
		currentNode.Set("label", operand.graphDescription())
		if operand.leaf {
			currentNode.Set("shape", "box")
		}
		for _, input := range operand.inputs {
			_, err := graph.CreateEdge("", nodes[input], currentNode)
			HandleError(err)
		}
		nodes[operand.id] = currentNode
	}

	return graphViz, graph
}

//RenderGraph writes the gradient expression graph in the given figure type ("dot", "png", "svg" or "jpg").
func (model *LinearModel) RenderGraph(w io.Writer, figureType string) error {
	format, ok := GraphFormats[figureType]
	if !ok {
		return fmt.Errorf("unknown figure type %q", figureType)
	}
	graphViz, graph := model.DrawGraph()
	defer func() {
		HandleError(graph.Close())
		graphViz.Close()
	}()
	return graphViz.Render(graph, format, w)
}

//RenderGraphFile writes the gradient expression graph into a file.
func (model *LinearModel) RenderGraphFile(fileName, figureType string) error {
	format, ok := GraphFormats[figureType]
	if !ok {
		return fmt.Errorf("unknown figure type %q", figureType)
	}
	graphViz, graph := model.DrawGraph()
	defer func() {
		HandleError(graph.Close())
		graphViz.Close()
	}()
	return graphViz.RenderFilename(graph, format, fileName)
}
