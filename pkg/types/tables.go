package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "knowscan_"

const (
	TABLE_SCAN_RECORD    = TableName("scan_record")
	TABLE_KNOWLEDGE_SCAN = TableName("knowledge_scan")
	TABLE_SCAN_REPORT    = TableName("scan_report")
)
