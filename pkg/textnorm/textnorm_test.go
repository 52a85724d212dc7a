// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/helpdesk/pkg/textnorm"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, "bill@mail.com", textnorm.Email("  Bill@Mail.COM "))
	assert.Equal(t, textnorm.Email("jose@mail.com"), textnorm.Email("JOSE@mail.com"))
}

func TestName(t *testing.T) {
	// "é" as e + combining acute accent must equal the precomposed form.
	assert.Equal(t, "Valdir Cez\u00e9r", textnorm.Name("  Valdir   Ceze\u0301r\t"))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "52998224725", textnorm.Digits("529.982.247-25"))
	assert.Equal(t, "", textnorm.Digits("abc"))
}

func TestText(t *testing.T) {
	assert.Equal(t, "line one\nline two", textnorm.Text("\n line one\nline two  "))
}
