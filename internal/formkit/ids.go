package formkit

import (
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// IDSource 分配字段 / 章节 id，id 一经分配不再复用
type IDSource interface {
	NextID() string
}

// SnowflakeIDs 基于 snowflake 的 id 源，按时间单调递增
type SnowflakeIDs struct {
	node *snowflake.Node
}

// NewSnowflakeIDs 创建 snowflake id 源，nodeID 取值 0-1023
func NewSnowflakeIDs(nodeID int64) (*SnowflakeIDs, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &SnowflakeIDs{node: node}, nil
}

// NextID 生成新的 id
func (s *SnowflakeIDs) NextID() string {
	return s.node.Generate().String()
}

// SequenceIDs 递增计数器 id 源，用于测试和可重复的输出
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceIDs 创建从 1 开始的计数器
func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix, next: 1}
}

// NextID 返回下一个 id
func (s *SequenceIDs) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.prefix + strconv.Itoa(s.next)
	s.next++
	return id
}
