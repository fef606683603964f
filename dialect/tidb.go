package dialect

// TiDB speaks the MySQL wire dialect, literals included.
type TiDB struct {
	*MySQL
}

func NewTiDBDialect() Dialect {
	return &TiDB{
		MySQL: NewMySQLDialect().(*MySQL),
	}
}

func (t *TiDB) Name() string {
	return "tidb"
}

func (t *TiDB) RenderValue(v any) (string, error) {
	return renderScalar(t.MySQL, v)
}
