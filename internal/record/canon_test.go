package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ascii", "moj", "moj"},
		{"full-width ascii folds to half-width", "ＮＴＴデータ", "NTTデータ"},
		{"half-width katakana folds to full-width", "ﾃﾞｼﾞﾀﾙ庁", "デジタル庁"},
		{"leading and trailing space trimmed", "  環境省  ", "環境省"},
		{"inner runs collapse to one space", "株式会社  日立　　製作所", "株式会社 日立 製作所"},
		{"ideographic space treated as space", "復興庁　統括官付", "復興庁 統括官付"},
		{"full-width digits", "第３ブロック", "第3ブロック"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.input))
		})
	}
}

func TestCanonicalNameIdempotent(t *testing.T) {
	inputs := []string{"ＮＴＴ  データ", "ﾃﾞｼﾞﾀﾙ庁", " 環境省 "}
	for _, in := range inputs {
		once := CanonicalName(in)
		assert.Equal(t, once, CanonicalName(once))
	}
}

func TestIsReservedOther(t *testing.T) {
	assert.True(t, (&Recipient{SpendingName: ReservedOtherName}).IsReservedOther())
	assert.True(t, (&Recipient{SpendingName: "その他 "}).IsReservedOther())
	assert.False(t, (&Recipient{SpendingName: "その他の会社"}).IsReservedOther())
}
