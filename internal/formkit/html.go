package formkit

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node 渲染结果，调用方负责序列化
type Node = *html.Node

// el 创建元素节点，nil 子节点被跳过
func el(a atom.Atom, list []html.Attribute, children ...Node) Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: list}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

func text(s string) Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// attrs 以 key, value 对构造属性列表，值为空的 class 被省略
func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == "class" && kv[i+1] == "" {
			continue
		}
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

// flag 追加布尔属性
func flag(list []html.Attribute, key string, on bool) []html.Attribute {
	if !on {
		return list
	}
	return append(list, html.Attribute{Key: key})
}

// Render 把节点写入 w
func Render(w io.Writer, n Node) error {
	return html.Render(w, n)
}

// RenderString 渲染为字符串，渲染失败时返回空串
func RenderString(n Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Attr 读取节点属性，测试和处理器用
func Attr(n Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Find 深度优先查找第一个满足条件的节点
func Find(n Node, match func(Node) bool) Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll 查找全部满足条件的节点
func FindAll(n Node, match func(Node) bool) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		if match(cur) {
			out = append(out, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByAtom 匹配指定标签
func ByAtom(a atom.Atom) func(Node) bool {
	return func(n Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

// ByAttr 匹配属性值
func ByAttr(key, val string) func(Node) bool {
	return func(n Node) bool {
		v, ok := Attr(n, key)
		return n.Type == html.ElementNode && ok && v == val
	}
}

// HasAttr 节点是否带某属性
func HasAttr(n Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// TextContent 拼接节点下的全部文本
func TextContent(n Node) string {
	var buf bytes.Buffer
	var walk func(Node)
	walk = func(cur Node) {
		if cur.Type == html.TextNode {
			buf.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
