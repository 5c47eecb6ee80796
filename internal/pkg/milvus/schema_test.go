package milvus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		field   *FieldSchema
		wantErr bool
	}{
		{
			name:    "valid varchar",
			field:   NewFieldSchema("id", DataTypeVarChar).WithMaxLength(64).WithPrimaryKey(true),
			wantErr: false,
		},
		{
			name:    "empty name",
			field:   NewFieldSchema("", DataTypeInt64),
			wantErr: true,
		},
		{
			name:    "vector without dimension",
			field:   NewFieldSchema("embedding", DataTypeFloatVector),
			wantErr: true,
		},
		{
			name:    "varchar without max length",
			field:   NewFieldSchema("content", DataTypeVarChar),
			wantErr: true,
		},
		{
			name:    "primary key wrong type",
			field:   NewFieldSchema("id", DataTypeFloat).WithPrimaryKey(true),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchemaBuilder_Build(t *testing.T) {
	schema, err := NewSchemaBuilder("contract_chunks", "contract chunk vectors").
		AddVarCharField("id", 64, true).
		AddVarCharField("document_id", 64, false).
		AddInt64Field("chunk_index", false, false).
		AddVarCharField("content", 65535, false).
		AddFloatVectorField("embedding", 1536).
		AddJSONField("metadata").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "contract_chunks", schema.Name)
	assert.Len(t, schema.Fields, 6)

	pk := schema.GetPrimaryKey()
	require.NotNil(t, pk)
	assert.Equal(t, "id", pk.Name)

	vec := schema.GetVectorField()
	require.NotNil(t, vec)
	assert.Equal(t, "embedding", vec.Name)
	assert.Equal(t, 1536, vec.Dimension)

	assert.NotNil(t, schema.GetField("metadata"))
	assert.Nil(t, schema.GetField("missing"))
}

func TestSchemaBuilder_Build_Invalid(t *testing.T) {
	// 没有主键
	_, err := NewSchemaBuilder("bad", "").
		AddVarCharField("content", 100, false).
		AddFloatVectorField("embedding", 8).
		Build()
	assert.Error(t, err)

	// 没有向量字段
	_, err = NewSchemaBuilder("bad", "").
		AddVarCharField("id", 64, true).
		Build()
	assert.Error(t, err)

	// 两个主键
	_, err = NewSchemaBuilder("bad", "").
		AddVarCharField("id", 64, true).
		AddInt64Field("id2", true, false).
		AddFloatVectorField("embedding", 8).
		Build()
	assert.Error(t, err)
}

func TestCollectionSchema_ToEntity(t *testing.T) {
	schema, err := NewSchemaBuilder("contract_chunks", "desc").
		AddVarCharField("id", 64, true).
		AddFloatVectorField("embedding", 8).
		Build()
	require.NoError(t, err)

	ent := schema.ToEntity()
	require.NotNil(t, ent)
	assert.Equal(t, "contract_chunks", ent.CollectionName)
	assert.Len(t, ent.Fields, 2)
	assert.True(t, ent.Fields[0].PrimaryKey)
}

func TestDataType_String(t *testing.T) {
	assert.Equal(t, "VarChar", DataTypeVarChar.String())
	assert.Equal(t, "FloatVector", DataTypeFloatVector.String())
	assert.Equal(t, "JSON", DataTypeJSON.String())
	assert.Equal(t, "Unknown", DataType(999).String())
	assert.True(t, DataTypeFloatVector.IsVector())
	assert.False(t, DataTypeVarChar.IsVector())
}
