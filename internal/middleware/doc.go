// Package middleware 는 HTTP 요청 처리에 쓰는 미들웨어를 제공한다.
//
// 세션 토큰 검증처럼 개별 핸들러 앞에서 공통으로 수행해야 하는
// 작업을 이곳에 둔다.
package middleware
