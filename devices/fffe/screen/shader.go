package screen

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragment = `
#version 420

uniform vec4 onColor;
uniform vec4 offColor;

layout (binding = 0) uniform sampler2D pixels;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    outputColor = mix(offColor, onColor, texture(pixels, fragTexCoord).r);
}
`
